package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
	// Config is the base configuration, replaced when --config is given.
	Config *config.Config
	// NewPool builds the exporter pool for export, open and serve.
	NewPool func(size int, opts ...draftkit.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  newConsoleLogger(os.Stderr),
		Config:  config.DefaultConfig(),
		NewPool: newExporterPool,
	}
}

func newConsoleLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// commandLogger applies the --quiet and --verbose levels.
func commandLogger(env *Environment, c commonFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case c.quiet:
		level = zerolog.ErrorLevel
	case c.verbose:
		level = zerolog.DebugLevel
	}
	return env.Logger.Level(level)
}
