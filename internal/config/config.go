// Package config reads the CLI defaults from the environment and an optional
// .env file. Command-line flags override every value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/emavok/paranoia/internal/logging"
)

var (
	// ErrParsingConfig wraps failures to read environment variables.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	// ErrInvalidConfig wraps values that parse but are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Output formats of the validate command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the CLI defaults.
type Config struct {
	Strict    bool   `env:"PARANOIA_STRICT" envDefault:"false"`
	MaxDepth  int    `env:"PARANOIA_MAX_DEPTH" envDefault:"0"`
	Output    string `env:"PARANOIA_OUTPUT" envDefault:"text"`
	LogLevel  string `env:"PARANOIA_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"PARANOIA_LOG_FORMAT" envDefault:"text"`
}

// Load reads files (".env" when none is given) into the process environment
// without overriding variables already set, then parses Config. Missing files
// are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// Parse reads Config from environ only, ignoring the process environment.
func Parse(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports out of range values.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("PARANOIA_MAX_DEPTH must not be negative, got %d", c.MaxDepth))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("PARANOIA_OUTPUT must be %q or %q, got %q", OutputText, OutputJSON, c.Output))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("PARANOIA_LOG_LEVEL: %w", err))
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("PARANOIA_LOG_FORMAT: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LoggerOptions translates the logging fields. Call Validate first.
func (c Config) LoggerOptions() []logging.Option {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		format = logging.FormatText
	}
	return []logging.Option{logging.WithLevel(level), logging.WithFormat(format)}
}
