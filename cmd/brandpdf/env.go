package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Environment holds injectable dependencies for testability: I/O, time,
// and the environment-variable overrides.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// Environment variable overrides.
const (
	envOutputDir   = "BRANDPDF_OUTPUT_DIR"
	envBrandConfig = "BRANDPDF_BRAND_CONFIG"
	envNoSandbox   = "BRANDPDF_NO_SANDBOX"
)

// applyEnvOverrides fills unset flags from the environment. Flags win over
// environment variables.
func applyEnvOverrides(env *Environment, flags *cliFlags) {
	if flags.output == "" {
		flags.output = env.Getenv(envOutputDir)
	}
	if flags.brand == "" {
		flags.brand = env.Getenv(envBrandConfig)
	}
	if !flags.noSandbox && env.Getenv(envNoSandbox) != "" {
		flags.noSandbox = true
	}
}

// newLogger builds the console logger honoring quiet/verbose.
func newLogger(env *Environment, flags *cliFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	if flags.quiet {
		level = zerolog.ErrorLevel
	}
	if flags.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: env.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
