package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jumpstat/jumpstat/pkg/config"
	"github.com/jumpstat/jumpstat/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`
	Trace   bool `help:"Log per-tick diagnostics. Very noisy."`

	Analyze struct {
		Ticks    string   `arg:"" name:"ticks" help:"Decoded tick records (.json or .cbor)." type:"existingfile"`
		Level    string   `help:"Level collision dump used for edge detection." type:"existingfile" short:"l"`
		Configs  []string `help:"Configuration files, applied in order." type:"existingfile" short:"c" name:"config"`
		Out      string   `help:"Write the report here instead of standard output." short:"o"`
		Format   string   `help:"Report encoding." enum:"json,cbor" default:"json" short:"f"`
		PerTick  bool     `help:"Include the optimizer's verdict for every tick."`
		Database string   `help:"SQLite database to record the run in, overrides storage.database."`
	} `cmd:"" help:"Find jump segments in a replay and summarize them."`

	Optimize struct {
		Ticks   string   `arg:"" name:"ticks" help:"Decoded tick records (.json or .cbor)." type:"existingfile"`
		Tick    int      `help:"Tick number to optimize." required:"" short:"t"`
		Configs []string `help:"Configuration files, applied in order." type:"existingfile" short:"c" name:"config"`
	} `cmd:"" help:"Search the best yaw for a single airborne tick."`

	History struct {
		Fingerprint string   `arg:"" optional:"" name:"fingerprint" help:"Only list runs of this replay."`
		Configs     []string `help:"Configuration files, applied in order." type:"existingfile" short:"c" name:"config"`
		Database    string   `help:"SQLite database to read, overrides storage.database."`
	} `cmd:"" help:"List recorded analysis runs."`

	Config struct {
	} `cmd:"" help:"Write jumpstat's default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	// Reports go to standard output, so logs don't
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kctx := kong.Parse(&CLI,
		kong.Name("jumpstat"),
		kong.Description("jump and strafe analysis for movement replays"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	if CLI.Version {
		fmt.Printf(
			"jumpstat %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	ctx := context.Background()

	var err error
	switch kctx.Command() {
	case "analyze <ticks>":
		err = analyzeCommand(ctx)
	case "optimize <ticks>":
		err = optimizeCommand()
	case "history":
		fallthrough
	case "history <fingerprint>":
		err = historyCommand(ctx)
	case "config":
		_, err = os.Stdout.Write(config.DEFAULT)
	}

	if err != nil {
		writeError(err)
	}
}
