package report

import (
	"testing"

	"github.com/jumpstat/jumpstat/pkg/geom"
	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"
	"github.com/jumpstat/jumpstat/pkg/replay/replaytest"
	"github.com/jumpstat/jumpstat/pkg/segment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockerFunc func(geom.Vector3) bool

func (f blockerFunc) PointIsBlocked(point geom.Vector3) bool {
	return f(point)
}

// strafeJump is a run-up, ten ticks of strafing that gain speed, and a
// landing.
func strafeJump(forward bool) []replay.TickSample {
	return replaytest.Sequence(30, func(i int, sample *replay.TickSample) {
		if i >= 10 && i <= 19 {
			*sample = replaytest.Strafing(i, 300+float64(i), 0)
			if forward {
				sample.SideMove = 0
				sample.ForwardMove = 400
			}
		}
		if i == 8 {
			sample.Commands = replay.NewCommandSet(replay.JumpPress)
		}
	})
}

func build(t *testing.T, builder *Builder, samples []replay.TickSample) (*Report, []segment.JumpSegment) {
	t.Helper()
	segments := segment.NewExtractor().Extract(samples)
	require.Len(t, segments, 1)
	return builder.Build(samples, segments), segments
}

func TestBuildSegment(t *testing.T) {
	samples := strafeJump(false)
	report, segments := build(t, NewBuilder(movement.Default()), samples)

	assert.Equal(t, len(samples), report.Ticks)
	assert.Equal(t, replay.Fingerprint(samples), report.Fingerprint)
	require.Len(t, report.Segments, 1)

	summary := report.Segments[0]
	source := segments[0]
	assert.Equal(t, source.Start, summary.Start)
	assert.Equal(t, source.End, summary.End)
	assert.Equal(t, samples[source.Start].Tick, summary.StartTick)
	assert.Equal(t, samples[source.End].Tick, summary.EndTick)
	assert.InDelta(t, float64(source.End-source.Start)*replaytest.FrameTime, summary.Duration, 1e-9)

	assert.Equal(t, 10, summary.AirTicks)
	assert.InDelta(t, 310, summary.TakeoffSpeed, 1e-9)
	assert.InDelta(t, 319, summary.PeakSpeed, 1e-9)
	assert.InDelta(t, 319, summary.LandingSpeed, 1e-9)

	assert.Equal(t, 1, summary.Jumps)
	assert.Equal(t, 0, summary.Ducks)
	require.Len(t, summary.Events, 1)
	assert.Equal(t, Event{Kind: "jump", Tick: 9}, summary.Events[0])

	assert.Greater(t, summary.Efficiency, 0.0)
	assert.LessOrEqual(t, summary.Efficiency, 1.0)

	assert.Zero(t, summary.EdgeTicks)
	assert.Empty(t, summary.Ticks)
}

func TestEfficiencyWithoutStrafing(t *testing.T) {
	report, _ := build(t, NewBuilder(movement.Default()), strafeJump(true))
	require.Len(t, report.Segments, 1)
	assert.InDelta(t, 0, report.Segments[0].Efficiency, 1e-9)
}

func TestPerTick(t *testing.T) {
	builder := NewBuilder(movement.Default())
	builder.PerTick = true
	builder.Level = blockerFunc(func(geom.Vector3) bool { return false })

	samples := strafeJump(false)
	report, segments := build(t, builder, samples)
	summary := report.Segments[0]

	require.Len(t, summary.Ticks, segments[0].Len())

	grounded := 0
	for i, tick := range summary.Ticks {
		sample := samples[segments[0].Start+i]
		assert.Equal(t, sample.Tick, tick.Tick)
		assert.Equal(t, sample.OnGround, tick.OnGround)
		if sample.OnGround {
			grounded++
			assert.Nil(t, tick.Optimized)
			assert.True(t, tick.Edge)
			continue
		}

		require.NotNil(t, tick.Optimized)
		assert.GreaterOrEqual(t, tick.Optimized.Gain, 0.0)
		assert.GreaterOrEqual(t, tick.Optimized.Speed, tick.Speed)
	}
	assert.Equal(t, grounded, summary.EdgeTicks)
}

func TestBuildEmpty(t *testing.T) {
	samples := replaytest.Sequence(5, nil)
	report := NewBuilder(movement.Default()).Build(samples, nil)
	assert.NotNil(t, report.Segments)
	assert.Empty(t, report.Segments)
}

func TestEncode(t *testing.T) {
	builder := NewBuilder(movement.Default())
	builder.PerTick = true
	report, _ := build(t, builder, strafeJump(false))
	report.Replay = "run.json"

	for _, format := range []replay.Format{replay.FormatJSON, replay.FormatCBOR} {
		data, err := Encode(report, format)
		require.NoError(t, err)

		decoded, err := Decode(data, format)
		require.NoError(t, err)
		assert.Equal(t, report, decoded)
	}

	_, err := Encode(report, replay.Format("xml"))
	assert.Error(t, err)
}
