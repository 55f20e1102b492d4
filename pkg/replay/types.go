package replay

import (
	"sort"

	"github.com/jumpstat/jumpstat/pkg/geom"
)

// Console commands the analysis looks for.
const (
	DuckPress   = "+duck"
	DuckRelease = "-duck"
	JumpPress   = "+jump"
	JumpRelease = "-jump"
)

// CommandSet holds the input commands observed on one tick.
type CommandSet map[string]struct{}

func NewCommandSet(commands ...string) CommandSet {
	set := make(CommandSet, len(commands))
	for _, command := range commands {
		set[command] = struct{}{}
	}
	return set
}

func (c CommandSet) Has(command string) bool {
	_, ok := c[command]
	return ok
}

// Sorted returns the commands in a stable order.
func (c CommandSet) Sorted() []string {
	commands := make([]string, 0, len(c))
	for command := range c {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}

// TickSample is the player state recorded for one tick of a replay.
type TickSample struct {
	Tick     int
	Time     float64
	Position geom.Vector3
	// Pitch, yaw and roll in degrees
	ViewAngles geom.Vector3
	ViewHeight geom.Vector3
	Velocity   geom.Vector3
	FrameTime  float64
	Msec       uint8
	OnGround   bool

	ForwardMove float64
	SideMove    float64
	UpMove      float64

	Commands CommandSet

	// Basis vectors as computed by the engine, when the replay carries them
	Forward geom.Vector3
	Right   geom.Vector3
	Up      geom.Vector3

	Gravity       float64
	Accelerate    float64
	AirAccelerate float64
	Friction      float64
	EdgeFriction  float64
	MaxVelocity   float64
}

// WithYaw returns a copy of the sample looking along a different yaw.
func (s TickSample) WithYaw(yaw float64) TickSample {
	s.ViewAngles[1] = yaw
	return s
}

// Speed is the horizontal speed at the start of the tick.
func (s *TickSample) Speed() float64 {
	return s.Velocity.Length2D()
}
