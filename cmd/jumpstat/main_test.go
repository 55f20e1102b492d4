package main

import (
	"context"
	"testing"

	"github.com/jumpstat/jumpstat/pkg/config"
	"github.com/jumpstat/jumpstat/pkg/replay"
	"github.com/jumpstat/jumpstat/pkg/replay/replaytest"
	"github.com/jumpstat/jumpstat/pkg/store"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysis(t *testing.T) analysis {
	settings, err := config.Process(nil)
	require.NoError(t, err)

	samples := replaytest.Sequence(40, func(i int, sample *replay.TickSample) {
		if i >= 10 && i <= 25 {
			sample.OnGround = false
		}
		if i == 8 {
			sample.Commands = replay.NewCommandSet(replay.JumpPress)
		}
	})

	return analysis{
		Settings: settings.Analysis,
		Samples:  samples,
		Replay:   "run.json",
	}
}

func TestAnalysisCache(t *testing.T) {
	ctx := context.Background()
	job := newAnalysis(t)
	cache := opt.Some[store.Store](store.FSStore(t.TempDir()))

	first, data, err := job.cached(ctx, cache, replay.FormatJSON)
	require.NoError(t, err)
	require.Len(t, first.Segments, 1)
	assert.Equal(t, "run.json", first.Replay)

	key, err := job.key(replay.FormatJSON)
	require.NoError(t, err)

	stored, err := cache.Value.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	second, again, err := job.cached(ctx, cache, replay.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	assert.Equal(t, first, second)
}

func TestAnalysisKey(t *testing.T) {
	job := newAnalysis(t)

	base, err := job.key(replay.FormatJSON)
	require.NoError(t, err)

	cbor, err := job.key(replay.FormatCBOR)
	require.NoError(t, err)
	assert.NotEqual(t, base, cbor)

	job.PerTick = true
	perTick, err := job.key(replay.FormatJSON)
	require.NoError(t, err)
	assert.NotEqual(t, base, perTick)

	job.PerTick = false
	job.Settings.Segments.GroundTolerance++
	tolerance, err := job.key(replay.FormatJSON)
	require.NoError(t, err)
	assert.NotEqual(t, base, tolerance)
}

func TestAnalysisWithoutCache(t *testing.T) {
	job := newAnalysis(t)

	result, data, err := job.cached(context.Background(), opt.None[store.Store](), replay.FormatCBOR)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, len(job.Samples), result.Ticks)
}
