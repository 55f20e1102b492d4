package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jumpstat/jumpstat/pkg/replay"

	"github.com/rs/zerolog"
	Z "github.com/rs/zerolog/log"
)

var (
	airOnly = flag.Bool("air", false, "only print airborne ticks")
	from    = flag.Int("from", 0, "first tick to print")
	to      = flag.Int("to", -1, "last tick to print, negative for no limit")
)

func format(sample *replay.TickSample) string {
	ground := "air"
	if sample.OnGround {
		ground = "gnd"
	}

	return fmt.Sprintf(
		"%6d %8.3f %s pos=(%.1f %.1f %.1f) ang=(%.2f %.2f) speed=%7.2f move=(%.0f %.0f) %s",
		sample.Tick,
		sample.Time,
		ground,
		sample.Position.X(),
		sample.Position.Y(),
		sample.Position.Z(),
		sample.ViewAngles.X(),
		sample.ViewAngles.Y(),
		sample.Speed(),
		sample.ForwardMove,
		sample.SideMove,
		strings.Join(sample.Commands.Sorted(), " "),
	)
}

func main() {
	Z.Logger = Z.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	flag.Parse()
	args := flag.Args()

	if len(args) != 1 {
		Z.Fatal().Msg("You must provide only a single argument.")
	}

	samples, err := replay.Load(args[0])
	if err != nil {
		Z.Fatal().Err(err).Msg("could not load ticks")
	}

	printed := 0
	for i := range samples {
		sample := &samples[i]

		if sample.Tick < *from || (*to >= 0 && sample.Tick > *to) {
			continue
		}

		if *airOnly && sample.OnGround {
			continue
		}

		fmt.Println(format(sample))
		printed++
	}

	Z.Info().Msgf("printed %d of %d ticks", printed, len(samples))
}
