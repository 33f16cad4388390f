package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Settings where zero is meaningful are pointers so "unset" stays distinct.
type FileConfig struct {
	Device      string  `toml:"device"`
	Baud        int     `toml:"baud"`
	ReadTimeout string  `toml:"read_timeout"`
	Interval    *uint32 `toml:"interval_ms"`
	Tolerance   *uint32 `toml:"tolerance_ms"`
	MaxToggles  *uint32 `toml:"count"`
	LogLevel    string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.blinkmon/config.toml if the home directory is known.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".blinkmon", "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig copies set file values into cfg, skipping any setting whose
// flag was given explicitly (changed is keyed by flag name).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	if fc.Device != "" && !changed["device"] {
		cfg.Device = fc.Device
	}
	if fc.Baud != 0 && !changed["baud"] {
		cfg.Baud = fc.Baud
	}
	if fc.ReadTimeout != "" && !changed["read-timeout"] {
		d, err := time.ParseDuration(fc.ReadTimeout)
		if err != nil {
			return fmt.Errorf("read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if fc.Interval != nil && !changed["interval"] {
		cfg.Interval = *fc.Interval
	}
	if fc.Tolerance != nil && !changed["tolerance"] {
		cfg.Tolerance = *fc.Tolerance
	}
	if fc.MaxToggles != nil && !changed["count"] {
		cfg.MaxToggles = *fc.MaxToggles
	}
	if fc.LogLevel != "" && !changed["log-level"] {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
