// Package config holds the blinkmon settings: defaults, TOML file, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config is the resolved monitor configuration.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration

	// Expected toggle period in ms; 0 takes it from the board's boot frame
	Interval uint32
	// Allowed lateness per toggle in ms
	Tolerance uint32
	// Stop after this many toggles; 0 runs until interrupted
	MaxToggles uint32

	LogLevel string
}

// DefaultConfig returns defaults for a NUCLEO board on Linux
func DefaultConfig() Config {
	return Config{
		Device:      "/dev/ttyACM0",
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
		Tolerance:   1,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for obviously wrong values
func (c Config) Validate() error {
	if c.Device == "" {
		return errors.New("device is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Baud)
	}
	// A zero timeout blocks in Read, so cancellation would wait for the next byte
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout %s", c.ReadTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Logger returns a console logger at the configured level
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}
