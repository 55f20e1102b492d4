package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jumpstat/jumpstat/pkg/config"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v9"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// Store keeps encoded reports keyed by the inputs that produced them.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

type FSStore string

var Missing = fmt.Errorf("report missing")

// Key derives a cache key from everything that influences a report.
func Key(parts ...string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(parts, "\x00")))
}

func (f FSStore) getPath(key string) string {
	return filepath.Join(string(f), key)
}

func (f FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	target := f.getPath(key)

	if !FileExists(target) {
		return nil, Missing
	}

	return os.ReadFile(target)
}

func (f FSStore) Set(ctx context.Context, key string, data []byte) error {
	return WriteBytes(data, f.getPath(key))
}

const (
	REPORT_KEY    = "report-%s"
	REPORT_EXPIRY = time.Duration(1 * time.Hour)
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf(REPORT_KEY, id)
	data, err := r.client.Get(ctx, key).Bytes()

	if err == redis.Nil {
		return nil, Missing
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, data []byte) error {
	key := fmt.Sprintf(REPORT_KEY, id)
	return r.client.Set(ctx, key, data, REPORT_EXPIRY).Err()
}

// RedisCache is a RedisStore with a configurable expiry.
type RedisCache struct {
	*RedisStore
	ttl time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		RedisStore: NewRedisStore(client),
		ttl:        ttl,
	}
}

func (r *RedisCache) Set(ctx context.Context, id string, data []byte) error {
	key := fmt.Sprintf(REPORT_KEY, id)
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

var _ Store = (*FSStore)(nil)
var _ Store = (*RedisStore)(nil)
var _ Store = (*RedisCache)(nil)

// Open picks the report cache described by the settings. Redis wins over a
// cache directory; with neither there is no cache.
func Open(ctx context.Context, settings config.StorageSettings) (opt.Option[Store], error) {
	if settings.Redis != "" {
		client := redis.NewClient(&redis.Options{
			Addr: settings.Redis,
		})

		err := client.Ping(ctx).Err()
		if err != nil {
			return opt.None[Store](), fmt.Errorf("failed to reach redis at %s: %w", settings.Redis, err)
		}

		log.Debug().Str("addr", settings.Redis).Msg("caching reports in redis")
		return opt.Some[Store](NewRedisCache(client, settings.TTL())), nil
	}

	if settings.CacheDirectory != "" {
		err := os.MkdirAll(settings.CacheDirectory, 0755)
		if err != nil {
			return opt.None[Store](), fmt.Errorf("failed to create cache directory: %w", err)
		}

		log.Debug().Str("dir", settings.CacheDirectory).Msg("caching reports on disk")
		return opt.Some[Store](FSStore(settings.CacheDirectory)), nil
	}

	return opt.None[Store](), nil
}
