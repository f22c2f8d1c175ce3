package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/bogfish/internal/board"
	"github.com/hailam/bogfish/internal/engine"
	"github.com/hailam/bogfish/internal/selfplay"
	"github.com/hailam/bogfish/internal/storage"
	"github.com/hailam/bogfish/internal/uci"
)

var (
	threads    = flag.Int("threads", envInt("BOGFISH_THREADS", engine.DefaultConfig().Threads), "worker threads per search")
	depth      = flag.Int("depth", envInt("BOGFISH_DEPTH", engine.DefaultConfig().Depth), "search depth in plies")
	mode       = flag.String("mode", "uci", "uci, selfplay or bench")
	evalName   = flag.String("eval", "material", "leaf evaluator: material or positional")
	fen        = flag.String("fen", board.StartFEN, "start position for selfplay and bench")
	maxPlies   = flag.Int("max-plies", 0, "ply limit for selfplay, 0 for none")
	journalDir = flag.String("journal", "", "journal directory (default: platform data dir)")
	noJournal  = flag.Bool("no-journal", false, "do not record the UCI session")
	logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("exit")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	// Positional arguments: threads, then depth.
	if args := flag.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("threads argument: %w", err)
		}
		*threads = n
		if len(args) > 1 {
			if *depth, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("depth argument: %w", err)
			}
		}
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", profilePath).Msg("cpu-profiling")
	}

	ev, ok := engine.EvaluatorByName(*evalName)
	if !ok {
		return fmt.Errorf("unknown evaluator %q", *evalName)
	}

	eng, err := engine.New(engine.Config{
		Threads:   *threads,
		Depth:     *depth,
		Evaluator: ev,
		Logger:    logger.With().Str("component", "engine").Logger(),
	})
	if err != nil {
		return err
	}
	logger.Info().Int("threads", *threads).Int("depth", *depth).Str("eval", *evalName).Str("mode", *mode).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "uci":
		return runUCI(ctx, eng, logger)

	case "selfplay":
		pos, side, err := board.ParseFEN(*fen)
		if err != nil {
			return err
		}
		out, err := selfplay.Play(ctx, eng, pos, side, selfplay.Options{
			MaxPlies: *maxPlies,
			Out:      os.Stdout,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Result: %s after %d plies\n", out.Result, out.Plies)
		return nil

	case "bench":
		pos, side, err := board.ParseFEN(*fen)
		if err != nil {
			return err
		}
		_, err = selfplay.Bench(eng, pos, side, os.Stdout)
		return err
	}

	return fmt.Errorf("unknown mode %q", *mode)
}

func runUCI(ctx context.Context, eng *engine.Engine, logger zerolog.Logger) error {
	opts := []uci.Option{uci.WithLogger(logger.With().Str("component", "uci").Logger())}

	if !*noJournal {
		j, err := openJournal()
		if err != nil {
			logger.Warn().Err(err).Msg("journal disabled")
		} else {
			defer j.Close()
			opts = append(opts, uci.WithJournal(j))
		}
	}

	return uci.New(eng, os.Stdin, os.Stdout, opts...).Run(ctx)
}

func openJournal() (*storage.Journal, error) {
	dir := *journalDir
	if dir == "" {
		var err error
		if dir, err = storage.JournalDir(); err != nil {
			return nil, err
		}
	}
	return storage.OpenJournal(dir)
}

// envInt reads an integer environment variable, falling back to def.
func envInt(name string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return v
	}
	return def
}
