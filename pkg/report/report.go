package report

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"
	"github.com/jumpstat/jumpstat/pkg/segment"
	"github.com/jumpstat/jumpstat/pkg/strafe"

	"github.com/fxamacker/cbor/v2"
)

type Event struct {
	Kind string `json:"kind" cbor:"kind"`
	Tick int    `json:"tick" cbor:"tick"`
}

// Optimization is the strafe optimizer's verdict for one airborne tick.
type Optimization struct {
	Yaw   float64 `json:"yaw" cbor:"yaw"`
	Speed float64 `json:"speed" cbor:"speed"`
	Gain  float64 `json:"gain" cbor:"gain"`
}

type Tick struct {
	Tick      int           `json:"tick" cbor:"tick"`
	Speed     float64       `json:"speed" cbor:"speed"`
	OnGround  bool          `json:"onGround" cbor:"onGround"`
	Edge      bool          `json:"edge,omitempty" cbor:"edge,omitempty"`
	Optimized *Optimization `json:"optimized,omitempty" cbor:"optimized,omitempty"`
}

type Segment struct {
	Start     int     `json:"start" cbor:"start"`
	End       int     `json:"end" cbor:"end"`
	StartTick int     `json:"startTick" cbor:"startTick"`
	EndTick   int     `json:"endTick" cbor:"endTick"`
	Duration  float64 `json:"duration" cbor:"duration"`
	AirTicks  int     `json:"airTicks" cbor:"airTicks"`
	// Grounded ticks spent at a ledge
	EdgeTicks int `json:"edgeTicks" cbor:"edgeTicks"`

	TakeoffSpeed float64 `json:"takeoffSpeed" cbor:"takeoffSpeed"`
	PeakSpeed    float64 `json:"peakSpeed" cbor:"peakSpeed"`
	LandingSpeed float64 `json:"landingSpeed" cbor:"landingSpeed"`

	Jumps  int     `json:"jumps" cbor:"jumps"`
	Ducks  int     `json:"ducks" cbor:"ducks"`
	Events []Event `json:"events" cbor:"events"`

	// Mean share of the best possible per-tick speed gain that was
	// actually achieved while airborne
	Efficiency float64 `json:"efficiency" cbor:"efficiency"`

	Ticks []Tick `json:"ticks,omitempty" cbor:"ticks,omitempty"`
}

type Report struct {
	Replay      string    `json:"replay" cbor:"replay"`
	Level       string    `json:"level,omitempty" cbor:"level,omitempty"`
	Fingerprint string    `json:"fingerprint" cbor:"fingerprint"`
	Ticks       int       `json:"ticks" cbor:"ticks"`
	Segments    []Segment `json:"segments" cbor:"segments"`
}

// Builder turns extracted segments into report entries.
type Builder struct {
	Physics   movement.Physics
	Optimizer *strafe.Optimizer
	// Optional, enables edge detection
	Level movement.Blocker
	// Include a diagnostic line for every tick
	PerTick bool
}

func NewBuilder(physics movement.Physics) *Builder {
	return &Builder{
		Physics:   physics,
		Optimizer: strafe.NewOptimizer(physics),
	}
}

func (b *Builder) segment(s *segment.JumpSegment) Segment {
	first := &s.Samples[0]
	last := &s.Samples[len(s.Samples)-1]

	result := Segment{
		Start:     s.Start,
		End:       s.End,
		StartTick: first.Tick,
		EndTick:   last.Tick,
		Duration:  last.Time - first.Time,
		Jumps:     s.Count(segment.EventJump),
		Ducks:     s.Count(segment.EventDuck),
		Events:    make([]Event, len(s.Events)),
	}

	for i, event := range s.Events {
		result.Events[i] = Event{
			Kind: event.Kind.String(),
			Tick: event.Tick,
		}
	}

	var efficiency float64
	var rated int

	takeoff := true
	for i := range s.Samples {
		sample := &s.Samples[i]
		speed := sample.Speed()

		tick := Tick{
			Tick:     sample.Tick,
			Speed:    speed,
			OnGround: sample.OnGround,
		}

		if sample.OnGround {
			if b.Level != nil && !b.Level.PointIsBlocked(b.Physics.Probe(sample)) {
				tick.Edge = true
				result.EdgeTicks++
			}
		} else {
			result.AirTicks++
			result.PeakSpeed = math.Max(result.PeakSpeed, speed)
			result.LandingSpeed = speed
			if takeoff {
				result.TakeoffSpeed = speed
				takeoff = false
			}

			best := b.Optimizer.Optimize(sample)
			tick.Optimized = &Optimization{
				Yaw:   best.Yaw(),
				Speed: best.Speed,
				Gain:  best.Gain(),
			}

			if possible := best.Speed - speed; possible > 1e-9 {
				efficiency += (best.Baseline - speed) / possible
				rated++
			}
		}

		if b.PerTick {
			result.Ticks = append(result.Ticks, tick)
		}
	}

	if rated > 0 {
		result.Efficiency = efficiency / float64(rated)
	}

	return result
}

func (b *Builder) Build(samples []replay.TickSample, segments []segment.JumpSegment) *Report {
	report := &Report{
		Fingerprint: replay.Fingerprint(samples),
		Ticks:       len(samples),
		Segments:    make([]Segment, 0, len(segments)),
	}

	for i := range segments {
		if len(segments[i].Samples) == 0 {
			continue
		}
		report.Segments = append(report.Segments, b.segment(&segments[i]))
	}

	return report
}

func Encode(report *Report, format replay.Format) ([]byte, error) {
	switch format {
	case replay.FormatJSON:
		return json.MarshalIndent(report, "", "  ")
	case replay.FormatCBOR:
		return cbor.Marshal(report)
	}
	return nil, fmt.Errorf("unsupported report format: %s", format)
}

func Decode(data []byte, format replay.Format) (*Report, error) {
	report := Report{}

	var err error
	switch format {
	case replay.FormatJSON:
		err = json.Unmarshal(data, &report)
	case replay.FormatCBOR:
		err = cbor.Unmarshal(data, &report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}
