package level

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jumpstat/jumpstat/pkg/bsp"
	"github.com/jumpstat/jumpstat/pkg/replay"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
)

// Decode parses a collision dump written by a level decoder.
func Decode(data []byte, format replay.Format) (*bsp.Data, error) {
	level := bsp.Data{}

	var err error
	switch format {
	case replay.FormatJSON:
		err = json.Unmarshal(data, &level)
	case replay.FormatCBOR:
		err = cbor.Unmarshal(data, &level)
	default:
		return nil, fmt.Errorf("unsupported level format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode level: %w", err)
	}

	return &level, nil
}

func Encode(level *bsp.Data, format replay.Format) ([]byte, error) {
	switch format {
	case replay.FormatJSON:
		return json.Marshal(level)
	case replay.FormatCBOR:
		return cbor.Marshal(level)
	}
	return nil, fmt.Errorf("unsupported level format: %s", format)
}

// Level is a loaded collision tree plus what identifies it.
type Level struct {
	Path        string
	Fingerprint string
	Tree        *bsp.Tree
}

// Load reads and builds the collision tree stored at path.
func Load(path string) (*Level, error) {
	format, err := replay.FormatOf(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := Decode(raw, format)
	if err != nil {
		return nil, err
	}

	tree, err := bsp.Build(data)
	if err != nil {
		return nil, fmt.Errorf("could not build %s: %w", path, err)
	}

	return &Level{
		Path:        path,
		Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64(raw)),
		Tree:        tree,
	}, nil
}
