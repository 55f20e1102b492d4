package main

import (
	"context"
	"fmt"

	"github.com/jumpstat/jumpstat/pkg/config"
	"github.com/jumpstat/jumpstat/pkg/store"
)

func historyCommand(ctx context.Context) error {
	options := CLI.History

	settings, err := config.Process(options.Configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database := settings.Storage.Database
	if options.Database != "" {
		database = options.Database
	}
	if database == "" {
		return fmt.Errorf("no database configured, set storage.database or pass --database")
	}

	history, err := store.InitDB(database)
	if err != nil {
		return err
	}
	defer history.Close()

	runs, err := history.Runs(ctx, options.Fingerprint)
	if err != nil {
		return err
	}

	for _, run := range runs {
		fmt.Printf(
			"%d %s %s %s ticks=%d segments=%d\n",
			run.ID,
			run.Created.Format("2006-01-02 15:04:05"),
			run.Fingerprint,
			run.Replay,
			run.Ticks,
			len(run.Segments),
		)
		for _, segment := range run.Segments {
			fmt.Printf(
				"  %d-%d jumps=%d ducks=%d peak=%.1f efficiency=%.2f\n",
				segment.StartTick,
				segment.EndTick,
				segment.Jumps,
				segment.Ducks,
				segment.PeakSpeed,
				segment.Efficiency,
			)
		}
	}

	return nil
}
