// Package config resolves process settings from flags layered over the
// environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// Level is the embedded level to load, without extension.
	Level string
	Debug bool
	// Transcript is a file or FIFO fed by an external speech recogniser.
	// "-" reads stdin; empty disables speech input.
	Transcript string
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
	// Watch hot reloads prefabs/ files from disk.
	Watch bool
}

func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Load parses args over environment defaults. Flags win over variables.
func Load(args []string) (*Config, error) {
	return load(args, os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Environment: env("JAMFEST_ENV", "development"),
		LogLevel:    parseLogLevel(env("LOG_LEVEL", "info")),
	}

	fs := flag.NewFlagSet("jamfest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Level, "level", env("JAMFEST_LEVEL", "room"), "level name in levels/ (basename, .json optional)")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug mode (J/M/B speak sugar/mentos/bridge)")
	fs.StringVar(&cfg.Transcript, "transcript", env("JAMFEST_TRANSCRIPT", ""), "speech transcript file or fifo, - for stdin")
	fs.StringVar(&cfg.MetricsAddr, "metrics", env("JAMFEST_METRICS_ADDR", ""), "address to serve /metrics on")
	fs.BoolVar(&cfg.Watch, "watch", false, "hot reload prefabs/ from disk")
	logLevel := fs.String("log-level", "", "override LOG_LEVEL")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("config: unexpected arguments %q", fs.Args())
	}
	if *logLevel != "" {
		cfg.LogLevel = parseLogLevel(*logLevel)
	}
	if cfg.Debug && *logLevel == "" && getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = slog.LevelDebug
	}
	cfg.Level = strings.TrimSuffix(cfg.Level, ".json")
	if cfg.Level == "" {
		return nil, errors.New("config: level must not be empty")
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
