package movement

import (
	"math"

	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/replay"
)

type FrictionResult struct {
	Velocity geom.Vector3
	// Speed lost this tick
	Drop float64
	// The player stood at a ledge and edge friction applied
	Edge bool
}

// Probe is the point checked for open air in front of a grounded player.
func (p Physics) Probe(sample *replay.TickSample) geom.Vector3 {
	ahead, _, _ := geom.AngleVectors(geom.NewVector(0, sample.ViewAngles.Y(), 0))

	return sample.Position.
		Add(ahead.Mul(p.ProbeAhead)).
		Sub(geom.NewVector(0, 0, p.ProbeDepth))
}

func (p Physics) edgeFriction(sample *replay.TickSample) float64 {
	if sample.EdgeFriction > 0 {
		return sample.EdgeFriction
	}
	return p.EdgeFriction
}

// Friction applies one tick of ground friction. When level geometry is
// given and the ground drops away in front of the player, friction is
// multiplied by the edge friction factor. A nil blocker never reports an
// edge.
func (p Physics) Friction(sample *replay.TickSample, level Blocker) FrictionResult {
	result := FrictionResult{Velocity: sample.Velocity}

	if !sample.OnGround {
		return result
	}

	speed := sample.Velocity.Length()
	if speed < MinFrictionSpeed {
		return result
	}

	friction := sample.Friction
	if level != nil && !level.PointIsBlocked(p.Probe(sample)) {
		result.Edge = true
		friction *= p.edgeFriction(sample)
	}

	drop := speed * friction * sample.FrameTime
	newspeed := math.Max(0, speed-drop)

	result.Drop = speed - newspeed
	result.Velocity = sample.Velocity.Mul(newspeed / speed)
	return result
}
