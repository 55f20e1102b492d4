package level

import (
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Cache keeps built collision trees around so analyses of several replays
// on the same level share one read-only tree.
type Cache struct {
	mutex  deadlock.RWMutex
	levels map[string]*Level
}

func NewCache() *Cache {
	return &Cache{
		levels: make(map[string]*Level),
	}
}

func (c *Cache) Lookup(path string) opt.Option[*Level] {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	level, ok := c.levels[path]
	if !ok {
		return opt.None[*Level]()
	}
	return opt.Some(level)
}

// Get returns the cached level for path, loading it on first use.
func (c *Cache) Get(path string) (*Level, error) {
	cached := c.Lookup(path)
	if opt.IsSome(cached) {
		return cached.Value, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if level, ok := c.levels[path]; ok {
		return level, nil
	}

	level, err := Load(path)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Str("fingerprint", level.Fingerprint).
		Int("nodes", level.Tree.NumNodes()).
		Msg("loaded level")

	c.levels[path] = level
	return level, nil
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.levels)
}
