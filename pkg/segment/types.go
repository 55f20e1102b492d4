package segment

import (
	"fmt"

	"github.com/jumpstat/jumpstat/pkg/replay"
)

type EventKind uint8

const (
	EventDuck EventKind = iota
	EventJump
)

func (k EventKind) String() string {
	switch k {
	case EventDuck:
		return "duck"
	case EventJump:
		return "jump"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a detected duck or jump input.
type Event struct {
	Kind EventKind
	// Tick number recorded on the tick that triggered detection
	Tick int
}

// JumpSegment is one jump technique, run-up included. Samples is a view
// into the sequence the segment was extracted from and is never copied.
type JumpSegment struct {
	// Inclusive sample indices
	Start   int
	End     int
	Samples []replay.TickSample
	Events  []Event
}

func (s JumpSegment) Len() int {
	return s.End - s.Start + 1
}

// Count returns how many events of a kind the segment saw.
func (s JumpSegment) Count(kind EventKind) int {
	count := 0
	for _, event := range s.Events {
		if event.Kind == kind {
			count++
		}
	}
	return count
}

func (s JumpSegment) String() string {
	return fmt.Sprintf(
		"[%d, %d] %d jumps %d ducks",
		s.Start,
		s.End,
		s.Count(EventJump),
		s.Count(EventDuck),
	)
}
