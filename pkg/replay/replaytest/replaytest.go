// Package replaytest builds synthetic tick sequences for tests.
package replaytest

import (
	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/replay"
)

// Default movement variables of a stock server running at 100 ticks per
// second.
const (
	FrameTime     = 0.01
	Gravity       = 800
	Accelerate    = 5
	AirAccelerate = 10
	Friction      = 4
	EdgeFriction  = 2
)

// Sample returns a standing player at the origin of tick i.
func Sample(i int) replay.TickSample {
	return replay.TickSample{
		Tick:          i,
		Time:          float64(i) * FrameTime,
		Position:      geom.NewVector(0, 0, 36),
		FrameTime:     FrameTime,
		Msec:          uint8(FrameTime * 1000),
		OnGround:      true,
		Commands:      replay.NewCommandSet(),
		Gravity:       Gravity,
		Accelerate:    Accelerate,
		AirAccelerate: AirAccelerate,
		Friction:      Friction,
		EdgeFriction:  EdgeFriction,
		MaxVelocity:   2000,
	}
}

// Sequence builds n samples, letting shape adjust each one.
func Sequence(n int, shape func(i int, sample *replay.TickSample)) []replay.TickSample {
	samples := make([]replay.TickSample, n)
	for i := range samples {
		samples[i] = Sample(i)
		if shape != nil {
			shape(i, &samples[i])
		}
	}
	return samples
}

// Strafing is an airborne sample moving along +x while holding a side
// strafe key and looking slightly off the velocity.
func Strafing(i int, speed, yaw float64) replay.TickSample {
	sample := Sample(i)
	sample.OnGround = false
	sample.Velocity = geom.NewVector(speed, 0, 0)
	sample.ViewAngles = geom.NewVector(0, yaw, 0)
	sample.SideMove = -400
	return sample
}
