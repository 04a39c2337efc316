// Package config loads clocker's settings from ~/.clocker/config.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/schedule"
)

// HomeEnv overrides the clocker data directory.
const HomeEnv = "CLOCKER_HOME"

// Config is the user-editable configuration.
type Config struct {
	LogLevel     string             `toml:"log_level"`
	AutoClockOut AutoClockOutConfig `toml:"auto_clock_out"`
}

// AutoClockOutConfig is the arming policy in its stored form.
type AutoClockOutConfig struct {
	Enabled  bool   `toml:"enabled"`
	Trigger  string `toml:"trigger"`  // option key, e.g. "AFTERNOON_IN"
	After    string `toml:"after"`    // offset from the trigger clock, e.g. "4h30m"
	At       string `toml:"at"`       // fixed time of day; wins over After
	Workdays string `toml:"workdays"` // "weekdays", "every monday", RRULE; empty = every day
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		AutoClockOut: AutoClockOutConfig{
			Enabled: true,
			Trigger: clockstate.AfternoonIn.Key(),
			After:   "4h30m",
		},
	}
}

// Dir returns the clocker data directory: $CLOCKER_HOME, else ~/.clocker.
func Dir(homeDir string) string {
	if d := os.Getenv(HomeEnv); d != "" {
		return d
	}
	return filepath.Join(homeDir, ".clocker")
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "config.toml")
}

// StatePath returns the state file path inside dir.
func StatePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// Load reads the config file in dir. A missing file yields Default();
// keys absent from the file keep their defaults.
func Load(dir string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(Path(dir), cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", Path(dir), err)
	}
	return cfg, nil
}

// Save writes cfg to the config file in dir, creating dir if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(Path(dir), buf.Bytes(), 0644)
}

// Policy converts the stored auto clock-out settings.
func (c *Config) Policy() (schedule.Policy, error) {
	a := c.AutoClockOut
	p := schedule.Policy{Disabled: !a.Enabled}

	trigger, err := clockstate.ParseOption(strings.ToUpper(strings.TrimSpace(a.Trigger)))
	if err != nil {
		return schedule.Policy{}, fmt.Errorf("auto_clock_out.trigger: %w", err)
	}
	if !trigger.IsIn() {
		return schedule.Policy{}, fmt.Errorf("auto_clock_out.trigger: %s is not a clock in", trigger)
	}
	p.Trigger = trigger

	if strings.TrimSpace(a.At) != "" {
		tod, err := schedule.ParseTimeOfDay(a.At)
		if err != nil {
			return schedule.Policy{}, fmt.Errorf("auto_clock_out.at: %w", err)
		}
		p.At = &tod
	} else {
		d, err := schedule.ParseOffset(a.After)
		if err != nil {
			return schedule.Policy{}, fmt.Errorf("auto_clock_out.after: %w", err)
		}
		p.After = d
	}

	workdays, err := schedule.ParseWorkdays(a.Workdays)
	if err != nil {
		return schedule.Policy{}, fmt.Errorf("auto_clock_out.workdays: %w", err)
	}
	p.Workdays = workdays

	return p, nil
}

// Level parses LogLevel, defaulting to warn.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return l
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := c.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var fields = map[string]field{
	"log_level": {
		get: func(c *Config) string { return c.LogLevel },
		set: func(c *Config, v string) error {
			var l slog.Level
			if err := l.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("invalid log level %q", v)
			}
			c.LogLevel = strings.ToLower(v)
			return nil
		},
	},
	"auto_clock_out.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.AutoClockOut.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", v)
			}
			c.AutoClockOut.Enabled = b
			return nil
		},
	},
	"auto_clock_out.trigger": {
		get: func(c *Config) string { return c.AutoClockOut.Trigger },
		set: func(c *Config, v string) error { c.AutoClockOut.Trigger = strings.ToUpper(v); return nil },
	},
	"auto_clock_out.after": {
		get: func(c *Config) string { return c.AutoClockOut.After },
		set: func(c *Config, v string) error { c.AutoClockOut.After = v; return nil },
	},
	"auto_clock_out.at": {
		get: func(c *Config) string { return c.AutoClockOut.At },
		set: func(c *Config, v string) error { c.AutoClockOut.At = v; return nil },
	},
	"auto_clock_out.workdays": {
		get: func(c *Config) string { return c.AutoClockOut.Workdays },
		set: func(c *Config, v string) error { c.AutoClockOut.Workdays = v; return nil },
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key '%s'", key)
	}
	return f.get(c), nil
}

// Set stores value under key and validates the resulting policy. On error
// c is left unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key '%s'", key)
	}

	next := *c
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return err
	}
	if _, err := next.Policy(); err != nil {
		return err
	}
	*c = next
	return nil
}
