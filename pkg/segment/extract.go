package segment

import (
	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"

	"github.com/rs/zerolog/log"
)

const (
	// Grounded ticks a segment survives before it is closed
	GroundTolerance = 10
	// Grounded ticks searched backwards for the start of a run-up
	RunUpWindow = 15
)

// Extractor splits a tick sequence into jump segments.
type Extractor struct {
	GroundTolerance int
	RunUpWindow     int

	// Only used for trace diagnostics on grounded ticks
	Physics movement.Physics
	Level   movement.Blocker
}

func NewExtractor() *Extractor {
	return &Extractor{
		GroundTolerance: GroundTolerance,
		RunUpWindow:     RunUpWindow,
		Physics:         movement.Default(),
	}
}

type phase uint8

const (
	idle phase = iota
	sequenced
)

// detector follows one input (duck or jump). A press seen on the ground
// stays armed for the rest of that ground contact until it is released.
type detector struct {
	kind    EventKind
	press   string
	release string
	// lag is how many ticks before the airborne tick the press must be armed
	lag int

	// the key was still down when the previous tick ended
	held bool
	// armed[0] is the previous tick, armed[1] the one before it
	armed [2]bool
}

func (d detector) fired(i int) bool {
	return i >= d.lag && d.armed[d.lag-1]
}

// consume drops the press once it produced an event.
func (d *detector) consume() {
	d.held = false
	d.armed = [2]bool{}
}

func (d detector) advance(sample *replay.TickSample) detector {
	pressed := sample.Commands.Has(d.press)
	released := sample.Commands.Has(d.release)

	armed := sample.OnGround && (pressed || d.held)

	d.held = sample.OnGround && (pressed || d.held) && !released
	d.armed[1] = d.armed[0]
	d.armed[0] = armed
	return d
}

// state is everything the scan carries from one tick to the next.
type state struct {
	phase          phase
	start          int
	groundedStreak int
	lastTouched    int
	events         []Event

	detectors [2]detector
}

func newState() state {
	return state{
		detectors: [2]detector{
			{
				kind:    EventDuck,
				press:   replay.DuckPress,
				release: replay.DuckRelease,
				lag:     2,
			},
			{
				kind:    EventJump,
				press:   replay.JumpPress,
				release: replay.JumpRelease,
				lag:     1,
			},
		},
	}
}

// runUp walks back from the tick that triggered an event and returns the
// earliest tick of the grounded stretch leading up to it.
func (e *Extractor) runUp(samples []replay.TickSample, trigger int) int {
	start := trigger
	for j := trigger - 1; j >= 0 && j >= trigger-e.RunUpWindow; j-- {
		if !samples[j].OnGround {
			break
		}
		start = j
	}
	return start
}

func (e *Extractor) emit(samples []replay.TickSample, s state, end int) JumpSegment {
	if end < s.start {
		end = s.start
	}

	segment := JumpSegment{
		Start:   s.start,
		End:     end,
		Samples: samples[s.start : end+1],
		Events:  s.events,
	}

	log.Debug().
		Int("start", segment.Start).
		Int("end", segment.End).
		Int("jumps", segment.Count(EventJump)).
		Int("ducks", segment.Count(EventDuck)).
		Msg("closed jump segment")

	return segment
}

func (e *Extractor) grounded(sample *replay.TickSample) {
	event := log.Trace()
	if !event.Enabled() {
		return
	}

	friction := e.Physics.Friction(sample, e.Level)
	event.
		Int("tick", sample.Tick).
		Float64("speed", sample.Speed()).
		Float64("drop", friction.Drop).
		Bool("edge", friction.Edge).
		Msg("grounded")
}

// step consumes tick i and returns the next state, plus the segment that
// tick closed if any.
func (e *Extractor) step(samples []replay.TickSample, i int, s state) (state, *JumpSegment) {
	sample := &samples[i]

	var closed *JumpSegment
	if sample.OnGround {
		e.grounded(sample)

		if s.phase == sequenced {
			s.groundedStreak++
			if s.groundedStreak > e.GroundTolerance {
				segment := e.emit(samples, s, s.lastTouched-1)
				closed = &segment

				s.phase = idle
				s.groundedStreak = 0
				s.events = nil
			}
		}
	} else {
		s.groundedStreak = 0

		for k := range s.detectors {
			d := &s.detectors[k]
			if !d.fired(i) {
				continue
			}
			d.consume()

			trigger := i - d.lag
			start := e.runUp(samples, trigger)

			switch s.phase {
			case idle:
				s.phase = sequenced
				s.start = start
				log.Debug().
					Int("start", start).
					Int("tick", samples[trigger].Tick).
					Str("input", d.kind.String()).
					Msg("opened jump segment")
			case sequenced:
				if start < s.start {
					s.start = start
				}
			}

			s.events = append(s.events, Event{
				Kind: d.kind,
				Tick: samples[trigger].Tick,
			})
		}

		if s.phase == sequenced {
			s.lastTouched = i
		}
	}

	for k := range s.detectors {
		s.detectors[k] = s.detectors[k].advance(sample)
	}

	return s, closed
}

// Extract scans the whole sequence once. Segments come out ordered by start,
// never overlap and reference samples without copying them, so samples must
// outlive the result.
func (e *Extractor) Extract(samples []replay.TickSample) []JumpSegment {
	segments := make([]JumpSegment, 0)

	s := newState()
	for i := range samples {
		var closed *JumpSegment
		s, closed = e.step(samples, i, s)
		if closed != nil {
			segments = append(segments, *closed)
		}
	}

	if s.phase == sequenced {
		segments = append(segments, e.emit(samples, s, s.lastTouched))
	}

	return segments
}
