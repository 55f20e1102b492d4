package main

import (
	"fmt"

	"github.com/jumpstat/jumpstat/pkg/config"
	"github.com/jumpstat/jumpstat/pkg/replay"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

func optimizeCommand() error {
	options := CLI.Optimize

	settings, err := config.Process(options.Configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	samples, err := replay.Load(options.Ticks)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", options.Ticks, err)
	}

	found := replay.FindTick(samples, options.Tick)
	if opt.IsNone(found) {
		return fmt.Errorf("tick %d is not in %s", options.Tick, options.Ticks)
	}

	sample := found.Value
	if sample.OnGround {
		log.Warn().Int("tick", sample.Tick).Msg("tick is grounded, air acceleration does not apply")
	}

	result := newOptimizer(settings.Analysis).Optimize(&sample)

	fmt.Printf("tick      %d\n", sample.Tick)
	fmt.Printf("speed     %.3f\n", sample.Speed())
	fmt.Printf("yaw       %.3f -> %.3f\n", sample.ViewAngles.Y(), result.Yaw())
	fmt.Printf("next      %.3f -> %.3f (%+.3f)\n", result.Baseline, result.Speed, result.Gain())
	return nil
}
