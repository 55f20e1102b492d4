package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jumpstat/jumpstat/pkg/config"
	"github.com/jumpstat/jumpstat/pkg/level"
	"github.com/jumpstat/jumpstat/pkg/movement"
	"github.com/jumpstat/jumpstat/pkg/replay"
	"github.com/jumpstat/jumpstat/pkg/report"
	"github.com/jumpstat/jumpstat/pkg/segment"
	"github.com/jumpstat/jumpstat/pkg/store"
	"github.com/jumpstat/jumpstat/pkg/strafe"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// analysis is everything one run of analyze needs.
type analysis struct {
	Settings config.AnalysisSettings
	Samples  []replay.TickSample
	Replay   string
	// Optional
	Level   *level.Level
	PerTick bool
}

func newOptimizer(settings config.AnalysisSettings) *strafe.Optimizer {
	optimizer := strafe.NewOptimizer(settings.Physics.Physics())
	optimizer.Window = settings.Optimizer.Window
	optimizer.Step = settings.Optimizer.Step
	optimizer.Workers = settings.Optimizer.Workers
	return optimizer
}

func (a *analysis) blocker() movement.Blocker {
	if a.Level == nil {
		return nil
	}
	return a.Level.Tree
}

// key identifies the report this analysis produces.
func (a *analysis) key(format replay.Format) (string, error) {
	settings, err := json.Marshal(a.Settings)
	if err != nil {
		return "", err
	}

	levelFingerprint := ""
	if a.Level != nil {
		levelFingerprint = a.Level.Fingerprint
	}

	return store.Key(
		replay.Fingerprint(a.Samples),
		levelFingerprint,
		string(settings),
		fmt.Sprint(a.PerTick),
		string(format),
	), nil
}

func (a *analysis) run() *report.Report {
	physics := a.Settings.Physics.Physics()

	extractor := segment.Extractor{
		GroundTolerance: a.Settings.Segments.GroundTolerance,
		RunUpWindow:     a.Settings.Segments.RunUpWindow,
		Physics:         physics,
		Level:           a.blocker(),
	}
	segments := extractor.Extract(a.Samples)

	builder := report.NewBuilder(physics)
	builder.Optimizer = newOptimizer(a.Settings)
	builder.Level = a.blocker()
	builder.PerTick = a.PerTick

	result := builder.Build(a.Samples, segments)
	result.Replay = a.Replay
	if a.Level != nil {
		result.Level = a.Level.Path
	}

	return result
}

// cached runs the analysis unless the cache already holds its report.
func (a *analysis) cached(ctx context.Context, cache opt.Option[store.Store], format replay.Format) (*report.Report, []byte, error) {
	key, err := a.key(format)
	if err != nil {
		return nil, nil, err
	}

	if opt.IsSome(cache) {
		data, err := cache.Value.Get(ctx, key)
		if err == nil {
			result, err := report.Decode(data, format)
			if err == nil {
				log.Info().Str("key", key).Msg("using cached report")
				return result, data, nil
			}
			log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached report")
		} else if !errors.Is(err, store.Missing) {
			log.Warn().Err(err).Msg("report cache unavailable")
		}
	}

	result := a.run()

	data, err := report.Encode(result, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode report: %w", err)
	}

	if opt.IsSome(cache) {
		err = cache.Value.Set(ctx, key, data)
		if err != nil {
			log.Warn().Err(err).Msg("failed to cache report")
		}
	}

	return result, data, nil
}

func analyzeCommand(ctx context.Context) error {
	options := CLI.Analyze

	settings, err := config.Process(options.Configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	samples, err := replay.Load(options.Ticks)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", options.Ticks, err)
	}

	job := analysis{
		Settings: settings.Analysis,
		Samples:  samples,
		Replay:   options.Ticks,
		PerTick:  options.PerTick,
	}

	if options.Level != "" {
		job.Level, err = level.NewCache().Get(options.Level)
		if err != nil {
			return fmt.Errorf("failed to load level %s: %w", options.Level, err)
		}
	}

	cache, err := store.Open(ctx, settings.Storage)
	if err != nil {
		return err
	}

	result, data, err := job.cached(ctx, cache, replay.Format(options.Format))
	if err != nil {
		return err
	}

	for _, summary := range result.Segments {
		log.Info().
			Int("start", summary.StartTick).
			Int("end", summary.EndTick).
			Int("jumps", summary.Jumps).
			Int("ducks", summary.Ducks).
			Float64("peak", summary.PeakSpeed).
			Float64("efficiency", summary.Efficiency).
			Msg("segment")
	}
	log.Info().Msgf("found %d segments in %d ticks", len(result.Segments), result.Ticks)

	database := settings.Storage.Database
	if options.Database != "" {
		database = options.Database
	}
	if database != "" {
		history, err := store.InitDB(database)
		if err != nil {
			return fmt.Errorf("failed to open history %s: %w", database, err)
		}
		defer history.Close()

		run, err := history.Record(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		log.Debug().Uint("id", run.ID).Msg("recorded run")
	}

	if options.Out != "" {
		return store.WriteBytes(data, options.Out)
	}

	_, err = os.Stdout.Write(data)
	return err
}
