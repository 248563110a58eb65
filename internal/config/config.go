// Package config loads event-reminder settings.
//
// Values are resolved with the following precedence (highest to lowest):
//  1. Command-line flags (Overrides)
//  2. Environment variables
//  3. YAML config file
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/pfrederiksen/event-reminder/internal/logger"
	"github.com/pfrederiksen/event-reminder/internal/notifier"
)

const (
	// DefaultDataFile is the default location of the event list.
	DefaultDataFile = "~/.local/share/event-reminder/dates.json"
	// DefaultDuration is the default notification display time.
	DefaultDuration = "20s"
)

// Environment variables read by Load.
const (
	EnvDataFile  = "EVENT_REMINDER_DATA_FILE"
	EnvIcon      = "EVENT_REMINDER_ICON"
	EnvNotifier  = "EVENT_REMINDER_NOTIFIER"
	EnvLogLevel  = "EVENT_REMINDER_LOG_LEVEL"
	EnvStopEarly = "EVENT_REMINDER_STOP_AT_FIRST_MISS"
)

// NotifierConfig selects and tunes the notification sink.
type NotifierConfig struct {
	Kind     string `yaml:"kind"`     // "desktop", "twitter", "telegram" or "dry-run"
	Duration string `yaml:"duration"` // display time, e.g. "20s"
	AppName  string `yaml:"app_name"` // desktop notifications only
}

// VerifyConfig tunes the verify pass.
type VerifyConfig struct {
	// StopAtFirstMiss ends the scan at the first event that is neither
	// expired nor on a reminder threshold.
	StopAtFirstMiss bool `yaml:"stop_at_first_miss"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Config holds the configuration for event-reminder.
type Config struct {
	DataFile string         `yaml:"data_file"`
	IconPath string         `yaml:"icon_path"`
	Notifier NotifierConfig `yaml:"notifier"`
	Verify   VerifyConfig   `yaml:"verify"`
	Log      LogConfig      `yaml:"log"`
}

// Overrides carries command-line values. Empty strings and nil pointers are
// ignored.
type Overrides struct {
	DataFile        string
	IconPath        string
	Notifier        string
	LogLevel        string
	StopAtFirstMiss *bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		Notifier: NotifierConfig{
			Kind:     string(notifier.KindDesktop),
			Duration: DefaultDuration,
			AppName:  notifier.DefaultAppName,
		},
		Log: LogConfig{
			Level:  string(logger.LevelInfo),
			Format: string(logger.FormatJSON),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/event-reminder/config.yaml, falling
// back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "event-reminder", "config.yaml")
}

// LoadConfigFromFile merges the YAML file at path into cfg.
func LoadConfigFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// Load resolves the configuration. When path is empty the default path is
// tried and silently skipped if missing; an explicit path must exist.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	// Step 1: Load from config file
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := LoadConfigFromFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	// Step 2: Override with environment variables
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvIcon); v != "" {
		cfg.IconPath = v
	}
	if v := os.Getenv(EnvNotifier); v != "" {
		cfg.Notifier.Kind = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvStopEarly); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvStopEarly, err)
		}
		cfg.Verify.StopAtFirstMiss = b
	}

	// Step 3: Override with command-line flags
	if o.DataFile != "" {
		cfg.DataFile = o.DataFile
	}
	if o.IconPath != "" {
		cfg.IconPath = o.IconPath
	}
	if o.Notifier != "" {
		cfg.Notifier.Kind = o.Notifier
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.StopAtFirstMiss != nil {
		cfg.Verify.StopAtFirstMiss = *o.StopAtFirstMiss
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file is required")
	}
	if _, err := notifier.ParseKind(c.Notifier.Kind); err != nil {
		return fmt.Errorf("notifier.kind: %w", err)
	}
	if _, err := c.DisplayDuration(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// NotifierKind returns the configured notifier.
func (c *Config) NotifierKind() notifier.Kind {
	k, err := notifier.ParseKind(c.Notifier.Kind)
	if err != nil {
		return notifier.KindDesktop
	}
	return k
}

// DisplayDuration returns how long notifications stay visible.
func (c *Config) DisplayDuration() (time.Duration, error) {
	return ParseDurationOrDefault("notifier.duration", c.Notifier.Duration, notifier.DefaultDuration)
}

// Logger builds the logger described by the log section.
func (c *Config) Logger(verbose bool) *logger.Logger {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	if verbose {
		level = logger.LevelDebug
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		format = logger.FormatJSON
	}
	return logger.NewWithFormat(level, format, os.Stderr)
}
