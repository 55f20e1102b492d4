package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jumpstat/jumpstat/pkg/geom"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	opt "github.com/repeale/fp-go/option"
)

var ErrEmpty = fmt.Errorf("replay contains no ticks")

type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// FormatOf picks a record format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unsupported record format: %s", path)
}

// Record is the on-disk shape of one tick as written by a replay decoder.
type Record struct {
	Tick          int        `json:"tick" cbor:"tick"`
	Time          float64    `json:"time" cbor:"time"`
	Position      [3]float64 `json:"position" cbor:"position"`
	ViewAngles    [3]float64 `json:"viewAngles" cbor:"viewAngles"`
	ViewHeight    [3]float64 `json:"viewHeight" cbor:"viewHeight"`
	Velocity      [3]float64 `json:"velocity" cbor:"velocity"`
	FrameTime     float64    `json:"frameTime" cbor:"frameTime"`
	Msec          uint8      `json:"msec,omitempty" cbor:"msec,omitempty"`
	OnGround      bool       `json:"onGround" cbor:"onGround"`
	Move          [3]float64 `json:"move" cbor:"move"`
	Commands      []string   `json:"commands,omitempty" cbor:"commands,omitempty"`
	Forward       [3]float64 `json:"forward" cbor:"forward"`
	Right         [3]float64 `json:"right" cbor:"right"`
	Up            [3]float64 `json:"up" cbor:"up"`
	Gravity       float64    `json:"gravity" cbor:"gravity"`
	Accelerate    float64    `json:"accelerate" cbor:"accelerate"`
	AirAccelerate float64    `json:"airAccelerate" cbor:"airAccelerate"`
	Friction      float64    `json:"friction" cbor:"friction"`
	EdgeFriction  float64    `json:"edgeFriction,omitempty" cbor:"edgeFriction,omitempty"`
	MaxVelocity   float64    `json:"maxVelocity,omitempty" cbor:"maxVelocity,omitempty"`
}

func (r *Record) Sample() TickSample {
	return TickSample{
		Tick:          r.Tick,
		Time:          r.Time,
		Position:      geom.Vector3(r.Position),
		ViewAngles:    geom.Vector3(r.ViewAngles),
		ViewHeight:    geom.Vector3(r.ViewHeight),
		Velocity:      geom.Vector3(r.Velocity),
		FrameTime:     r.FrameTime,
		Msec:          r.Msec,
		OnGround:      r.OnGround,
		ForwardMove:   r.Move[0],
		SideMove:      r.Move[1],
		UpMove:        r.Move[2],
		Commands:      NewCommandSet(r.Commands...),
		Forward:       geom.Vector3(r.Forward),
		Right:         geom.Vector3(r.Right),
		Up:            geom.Vector3(r.Up),
		Gravity:       r.Gravity,
		Accelerate:    r.Accelerate,
		AirAccelerate: r.AirAccelerate,
		Friction:      r.Friction,
		EdgeFriction:  r.EdgeFriction,
		MaxVelocity:   r.MaxVelocity,
	}
}

func NewRecord(s *TickSample) Record {
	return Record{
		Tick:          s.Tick,
		Time:          s.Time,
		Position:      s.Position,
		ViewAngles:    s.ViewAngles,
		ViewHeight:    s.ViewHeight,
		Velocity:      s.Velocity,
		FrameTime:     s.FrameTime,
		Msec:          s.Msec,
		OnGround:      s.OnGround,
		Move:          [3]float64{s.ForwardMove, s.SideMove, s.UpMove},
		Commands:      s.Commands.Sorted(),
		Forward:       s.Forward,
		Right:         s.Right,
		Up:            s.Up,
		Gravity:       s.Gravity,
		Accelerate:    s.Accelerate,
		AirAccelerate: s.AirAccelerate,
		Friction:      s.Friction,
		EdgeFriction:  s.EdgeFriction,
		MaxVelocity:   s.MaxVelocity,
	}
}

// Decode parses a tick record file. Records must be ordered by tick.
func Decode(data []byte, format Format) ([]TickSample, error) {
	var records []Record

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode ticks: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	samples := make([]TickSample, len(records))
	for i := range records {
		if i > 0 && records[i].Tick < records[i-1].Tick {
			return nil, fmt.Errorf(
				"tick %d follows tick %d, records must be ordered",
				records[i].Tick,
				records[i-1].Tick,
			)
		}
		samples[i] = records[i].Sample()
	}

	return samples, nil
}

func Encode(samples []TickSample, format Format) ([]byte, error) {
	records := make([]Record, len(samples))
	for i := range samples {
		records[i] = NewRecord(&samples[i])
	}

	switch format {
	case FormatJSON:
		return json.Marshal(records)
	case FormatCBOR:
		return cbor.Marshal(records)
	}
	return nil, fmt.Errorf("unsupported record format: %s", format)
}

// Load reads a tick record file, picking the format from its extension.
func Load(path string) ([]TickSample, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data, format)
}

// FindTick looks up the sample recorded for a tick number.
func FindTick(samples []TickSample, tick int) opt.Option[TickSample] {
	for _, sample := range samples {
		if sample.Tick == tick {
			return opt.Some(sample)
		}
	}

	return opt.None[TickSample]()
}

var fingerprintMode, _ = cbor.CoreDetEncOptions().EncMode()

// Fingerprint identifies a tick sequence by content. Equal sequences give
// equal fingerprints regardless of the file they came from.
func Fingerprint(samples []TickSample) string {
	digest := xxhash.New()
	for i := range samples {
		record := NewRecord(&samples[i])
		data, err := fingerprintMode.Marshal(record)
		if err != nil {
			continue
		}
		digest.Write(data)
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
