package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	DefaultCapacity  = 100
	DefaultMinBookID = 1000
	DefaultMaxBookID = 10000

	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidIDRange   = errors.New("book id range is invalid")
	ErrInvalidLogLevel  = errors.New("log level must be one of debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("log format must be text or json")
)

// Config holds the settings of one session.
type Config struct {
	Capacity  int
	MinBookID int
	MaxBookID int // exclusive

	LogLevel         string
	LogFormat        string
	TelemetryEnabled bool
}

// Default returns the configuration the program runs with when no flags are given.
func Default() Config {
	return Config{
		Capacity:  DefaultCapacity,
		MinBookID: DefaultMinBookID,
		MaxBookID: DefaultMaxBookID,
		LogLevel:  "warn",
		LogFormat: LogFormatText,
	}
}

// Parse parses args (without the program name) and validates the result.
// Usage and flag errors are written to output.
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("ltu-library", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Maximum number of books and of loans")
	fs.IntVar(&cfg.MinBookID, "min-book-id", cfg.MinBookID, "Smallest assignable book id")
	fs.IntVar(&cfg.MaxBookID, "max-book-id", cfg.MaxBookID, "Upper bound (exclusive) of assignable book ids")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostic log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostic log format: text or json")
	fs.BoolVar(&cfg.TelemetryEnabled, "telemetry", cfg.TelemetryEnabled, "Enable OpenTelemetry tracing and metrics")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that ids can always be allocated and that the log settings are known.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.Capacity)
	}

	if c.MinBookID < 0 || c.MaxBookID <= c.MinBookID {
		return fmt.Errorf("%w: [%d, %d) is empty", ErrInvalidIDRange, c.MinBookID, c.MaxBookID)
	}

	if c.MaxBookID-c.MinBookID < c.Capacity {
		return fmt.Errorf(
			"%w: [%d, %d) holds fewer ids than the capacity %d",
			ErrInvalidIDRange, c.MinBookID, c.MaxBookID, c.Capacity,
		)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.LogFormat)
	}

	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return level, nil
}
