package movement

import (
	"math"
	"testing"

	"github.com/jumpstat/jumpstat/pkg/bsp"
	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/replay/replaytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-6

func assertVector(t *testing.T, expected, actual geom.Vector3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], epsilon, "component %d of %v", i, actual)
	}
}

func TestAirAccelerateGrounded(t *testing.T) {
	physics := Default()

	sample := replaytest.Sample(0)
	sample.Velocity = geom.NewVector(250, 10, 0)
	sample.ForwardMove = 400
	sample.SideMove = -400

	assert.Equal(t, geom.Zero, physics.AirAccelerate(&sample))
}

func TestAirAccelerateNoInput(t *testing.T) {
	physics := Default()

	sample := replaytest.Strafing(0, 280, 33)
	sample.SideMove = 0
	sample.Velocity = geom.NewVector(280, -12, 150)

	assertVector(t, sample.Velocity, physics.AirAccelerate(&sample))
}

func TestAirAccelerateStrafe(t *testing.T) {
	physics := Default()

	// Looking along the velocity while strafing left
	sample := replaytest.Strafing(0, 300, 0)
	result := physics.AirAccelerate(&sample)

	assertVector(t, geom.NewVector(300, 30, 0), result)
	assert.InDelta(t, math.Sqrt(300*300+30*30), result.Length2D(), epsilon)
}

func TestAirAccelerateCappedByAccel(t *testing.T) {
	physics := Default()

	sample := replaytest.Strafing(0, 300, 0)
	sample.AirAccelerate = 1
	result := physics.AirAccelerate(&sample)

	// 1 * 0.01 * 400 = 4
	assertVector(t, geom.NewVector(300, 4, 0), result)
}

func TestAirAccelerateAlreadyFaster(t *testing.T) {
	physics := Default()

	sample := replaytest.Strafing(0, 300, 0)
	sample.SideMove = 0
	sample.ForwardMove = 400

	assertVector(t, sample.Velocity, physics.AirAccelerate(&sample))
}

func TestAirAccelerateIgnoresPitch(t *testing.T) {
	physics := Default()

	level := replaytest.Strafing(0, 300, 0)
	tilted := level
	tilted.ViewAngles = geom.NewVector(60, 0, 0)

	assertVector(t, physics.AirAccelerate(&level), physics.AirAccelerate(&tilted))
}

func TestGroundAccelerate(t *testing.T) {
	physics := Default()

	sample := replaytest.Sample(0)
	sample.ForwardMove = 400

	// wishspeed clamps to 320, 5 * 0.01 * 320 = 16
	assertVector(t, geom.NewVector(16, 0, 0), physics.GroundAccelerate(&sample))

	sample.Velocity = geom.NewVector(310, 0, 0)
	assertVector(t, geom.NewVector(320, 0, 0), physics.GroundAccelerate(&sample))

	// Faster than the cap, nothing to add
	sample.Velocity = geom.NewVector(400, 0, 0)
	assertVector(t, sample.Velocity, physics.GroundAccelerate(&sample))

	sample.OnGround = false
	assert.Equal(t, geom.Zero, physics.GroundAccelerate(&sample))
}

func TestGroundAccelerateNoInput(t *testing.T) {
	physics := Default()

	sample := replaytest.Sample(0)
	sample.Velocity = geom.NewVector(100, 50, 0)

	assertVector(t, sample.Velocity, physics.GroundAccelerate(&sample))
}

func TestProbe(t *testing.T) {
	physics := Default()

	sample := replaytest.Sample(0)
	sample.Position = geom.NewVector(10, 20, 36)
	sample.ViewAngles = geom.NewVector(-80, 90, 0)

	assertVector(t, geom.NewVector(10, 36, 36-ProbeDepth), physics.Probe(&sample))
}

func TestFriction(t *testing.T) {
	physics := Default()

	sample := replaytest.Sample(0)
	sample.Velocity = geom.NewVector(200, 0, 0)

	result := physics.Friction(&sample, nil)
	assert.False(t, result.Edge)
	assert.InDelta(t, 8, result.Drop, epsilon)
	assertVector(t, geom.NewVector(192, 0, 0), result.Velocity)

	sample.Friction = 1000
	result = physics.Friction(&sample, nil)
	assertVector(t, geom.Zero, result.Velocity)
	assert.InDelta(t, 200, result.Drop, epsilon)
}

func TestFrictionSkips(t *testing.T) {
	physics := Default()

	slow := replaytest.Sample(0)
	slow.Velocity = geom.NewVector(0.05, 0, 0)
	assert.Equal(t, slow.Velocity, physics.Friction(&slow, nil).Velocity)

	airborne := replaytest.Strafing(0, 300, 0)
	result := physics.Friction(&airborne, nil)
	assert.Equal(t, airborne.Velocity, result.Velocity)
	assert.Zero(t, result.Drop)
}

func TestEdgeFriction(t *testing.T) {
	physics := Default()

	floor, err := bsp.Build(bsp.Room(geom.NewVector(-512, -512, 0), geom.NewVector(512, 512, 512)))
	require.NoError(t, err)

	pit, err := bsp.Build(bsp.Room(geom.NewVector(-512, -512, -512), geom.NewVector(512, 512, 512)))
	require.NoError(t, err)

	sample := replaytest.Sample(0)
	sample.Velocity = geom.NewVector(200, 0, 0)

	// Solid ground below the probe
	result := physics.Friction(&sample, floor)
	assert.False(t, result.Edge)
	assertVector(t, geom.NewVector(192, 0, 0), result.Velocity)

	// Open air below the probe
	result = physics.Friction(&sample, pit)
	assert.True(t, result.Edge)
	assertVector(t, geom.NewVector(184, 0, 0), result.Velocity)

	// Tick supplied factor wins over the default
	sample.EdgeFriction = 3
	result = physics.Friction(&sample, pit)
	assertVector(t, geom.NewVector(176, 0, 0), result.Velocity)

	sample.EdgeFriction = 0
	physics.EdgeFriction = 4
	result = physics.Friction(&sample, pit)
	assertVector(t, geom.NewVector(168, 0, 0), result.Velocity)
}
