package strafe

import (
	"math"
	"testing"

	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"
	"github.com/jumpstat/jumpstat/pkg/replay/replaytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func angleBetween(a, b float64) float64 {
	return math.Abs(math.Remainder(a-b, 360))
}

func TestCandidates(t *testing.T) {
	o := NewOptimizer(movement.Default())

	yaws := o.candidates(180)
	require.Len(t, yaws, 61)
	assert.Equal(t, 180.0, yaws[30])
	assert.InDelta(t, 177, yaws[0], 1e-9)
	assert.InDelta(t, 183, yaws[60], 1e-9)

	for _, yaw := range []float64{0, 1.5, 358.7, 359.95} {
		for _, candidate := range o.candidates(yaw) {
			assert.GreaterOrEqual(t, candidate, 0.0)
			assert.Less(t, candidate, 360.0)
			assert.LessOrEqual(t, angleBetween(candidate, yaw), Window+1e-9)
		}
	}

	o.Window = 0
	assert.Equal(t, []float64{42}, o.candidates(42))
}

func TestOptimizeNeverWorse(t *testing.T) {
	physics := movement.Default()
	o := NewOptimizer(physics)

	samples := []replay.TickSample{
		replaytest.Strafing(0, 300, 0),
		replaytest.Strafing(1, 300, 2),
		replaytest.Strafing(2, 450, 359.95),
		replaytest.Strafing(3, 120, 181.3),
		replaytest.Strafing(4, 0, 90),
	}
	samples[3].ForwardMove = 400
	samples[4].SideMove = 400

	for i := range samples {
		sample := samples[i]
		own := physics.AirAccelerate(&sample).Length2D()

		result := o.Optimize(&sample)
		assert.GreaterOrEqual(t, result.Speed, own)
		assert.InDelta(t, own, result.Baseline, 1e-12)
		assert.GreaterOrEqual(t, result.Gain(), 0.0)

		// Only the yaw changes
		assert.Equal(t, sample.ViewAngles.X(), result.Angles.X())
		assert.Equal(t, sample.ViewAngles.Z(), result.Angles.Z())
		assert.Equal(t, samples[i], sample)
	}
}

func TestOptimizeFindsPerpendicular(t *testing.T) {
	o := NewOptimizer(movement.Default())

	// Wish direction already perpendicular to the velocity
	sample := replaytest.Strafing(0, 300, 0)
	result := o.Optimize(&sample)
	assert.Equal(t, 0.0, result.Yaw())
	assert.InDelta(t, math.Sqrt(300*300+30*30), result.Speed, 1e-9)
	assert.InDelta(t, 0, result.Gain(), 1e-12)

	// Two degrees off, the best yaw turns back
	sample = replaytest.Strafing(0, 300, 2)
	result = o.Optimize(&sample)
	assert.Less(t, angleBetween(result.Yaw(), 0), 0.05)
	assert.InDelta(t, math.Sqrt(300*300+30*30), result.Speed, 1e-6)
	assert.Greater(t, result.Gain(), 0.0)
	assert.InDelta(t, result.Speed, result.Velocity.Length2D(), 1e-9)
}

func TestOptimizeTiesPickLowestOffset(t *testing.T) {
	o := NewOptimizer(movement.Default())

	// Grounded samples never air accelerate, every candidate is zero
	sample := replaytest.Sample(0)
	sample.ViewAngles = geom.NewVector(0, 1, 0)

	result := o.Optimize(&sample)
	assert.Zero(t, result.Speed)
	assert.InDelta(t, 358, result.Yaw(), 1e-9)
}

func TestOptimizeParallel(t *testing.T) {
	sequential := NewOptimizer(movement.Default())
	parallel := NewOptimizer(movement.Default())
	parallel.Workers = 8

	for i, yaw := range []float64{0, 2, 45.5, 359.9} {
		sample := replaytest.Strafing(i, 320, yaw)
		assert.Equal(t, sequential.Optimize(&sample), parallel.Optimize(&sample))
	}
}
