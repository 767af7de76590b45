package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	brandpdf "github.com/alnah/go-brandpdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()
	os.Exit(run(env, os.Args))
}

// run is the testable entry point. It owns the batch-wide resources: the
// signal context, the scratch directory, and the shared timestamp. The
// scratch directory is removed on every exit path, including signals and
// fatal errors.
func run(env *Environment, args []string) (code int) {
	flags, target, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		if errors.Is(err, errVersionRequested) {
			fmt.Fprintf(env.Stdout, "brandpdf %s\n", Version)
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	applyEnvOverrides(env, flags)
	logger := newLogger(env, flags).With().Str("run", uuid.NewString()[:8]).Logger()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	}))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	files, err := discoverFiles(target)
	if err != nil {
		logger.Error().Err(err).Msg("discovery failed")
		return exitCodeFor(err)
	}
	if len(files) == 0 {
		logger.Info().Str("target", target).Msg("no eligible markdown files")
		return ExitSuccess
	}

	// One scratch dir and one timestamp per batch.
	scratchDir, err := os.MkdirTemp("", "brandpdf-scratch-")
	if err != nil {
		logger.Error().Err(err).Msg("cannot create scratch directory")
		return ExitGeneral
	}
	defer func() {
		if rmErr := os.RemoveAll(scratchDir); rmErr != nil {
			logger.Warn().Err(rmErr).Msg("scratch cleanup failed")
		}
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("fatal error")
			code = ExitGeneral
		}
	}()

	stamp := env.Now().Format(stampFormat)

	brand := brandpdf.ResolveBrand(flags.brand, logger)
	svc, err := newService(brand,
		brandpdf.WithScratchDir(scratchDir),
		brandpdf.WithNoSandbox(flags.noSandbox),
		brandpdf.WithLogger(logger),
	)
	if err != nil {
		logger.Error().Err(err).Msg("service init failed")
		return ExitGeneral
	}
	defer svc.Close()

	result := runBatch(ctx, svc, files, flags, stamp, logger)
	printSummary(env, logger, result)

	if err := ctx.Err(); err != nil {
		return ExitGeneral
	}
	return ExitSuccess
}

// printSummary reports per-batch counts. A batch with failures still exits
// zero: per-file failures are terminal for the file, not the invocation.
func printSummary(env *Environment, logger zerolog.Logger, result BatchResult) {
	logger.Info().
		Int("total", result.TotalFiles).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("batch done")
	fmt.Fprintf(env.Stdout, "%d file(s): %d succeeded, %d failed\n",
		result.TotalFiles, result.Succeeded, result.Failed)
}
