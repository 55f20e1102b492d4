package movement

import (
	"math"

	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/replay"
)

const (
	// Horizontal wish speed cap while airborne
	MaxAirWishSpeed = 30.0
	// sv_maxspeed
	MaxSpeed = 320.0
	// sv_edgefriction
	EdgeFriction = 2.0
	// Velocities slower than this are left alone by friction
	MinFrictionSpeed = 0.1

	// The ledge probe sits this far ahead of the player...
	ProbeAhead = 16.0
	// ...and this far below the origin
	ProbeDepth = 106.0
)

// Blocker answers point containment queries against level geometry.
type Blocker interface {
	PointIsBlocked(point geom.Vector3) bool
}

// Physics holds the movement variables that are not recorded per tick.
type Physics struct {
	MaxSpeed        float64
	MaxAirWishSpeed float64
	// Used when a tick does not carry its own edge friction
	EdgeFriction float64
	ProbeAhead   float64
	ProbeDepth   float64
}

func Default() Physics {
	return Physics{
		MaxSpeed:        MaxSpeed,
		MaxAirWishSpeed: MaxAirWishSpeed,
		EdgeFriction:    EdgeFriction,
		ProbeAhead:      ProbeAhead,
		ProbeDepth:      ProbeDepth,
	}
}

// wishVelocity combines the horizontal movement axes with the view basis.
// Pitch and roll only tilt the basis, so it is flattened first and the
// requested velocity always lies in the horizontal plane.
func wishVelocity(sample *replay.TickSample) geom.Vector3 {
	forward, right, _ := geom.AngleVectors(sample.ViewAngles)
	forward = forward.Flatten().Normalize2D()
	right = right.Flatten().Normalize2D()

	return forward.Mul(sample.ForwardMove).Add(right.Mul(sample.SideMove))
}

// AirAccelerate returns the velocity after one tick of air acceleration.
// Grounded samples yield the zero vector.
func (p Physics) AirAccelerate(sample *replay.TickSample) geom.Vector3 {
	if sample.OnGround {
		return geom.Zero
	}

	wishvel := wishVelocity(sample)
	wishdir := wishvel.Normalize2D()

	wishspeed := math.Min(wishvel.Length2D(), p.MaxAirWishSpeed)

	currentspeed := sample.Velocity.Dot(wishdir)
	addspeed := math.Max(0, wishspeed-currentspeed)

	accelspeed := math.Min(
		addspeed,
		sample.AirAccelerate*sample.FrameTime*wishvel.Length2D(),
	)

	return sample.Velocity.Add(wishdir.Mul(accelspeed))
}

// GroundAccelerate returns the velocity after one tick of ground
// acceleration. Airborne samples yield the zero vector.
func (p Physics) GroundAccelerate(sample *replay.TickSample) geom.Vector3 {
	if !sample.OnGround {
		return geom.Zero
	}

	wishvel := wishVelocity(sample)
	wishdir := wishvel.Normalize2D()

	wishspeed := math.Min(wishvel.Length2D(), p.MaxSpeed)

	addspeed := wishspeed - sample.Velocity.Dot(wishdir)
	if addspeed <= 0 {
		return sample.Velocity
	}

	accelspeed := math.Min(
		addspeed,
		sample.Accelerate*sample.FrameTime*wishspeed,
	)

	return sample.Velocity.Add(wishdir.Mul(accelspeed))
}
