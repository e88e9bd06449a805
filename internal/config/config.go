// Package config loads pathwise settings from an optional YAML file, the
// environment (PATHWISE_ prefix) and defaults, in increasing precedence:
// defaults < file < environment. Command-line flags are applied by the
// caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PATHWISE_DB or
// PATHWISE_LOG_LEVEL.
const EnvPrefix = "PATHWISE"

// Config holds all pathwise settings.
type Config struct {
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB     string       `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	// File enables a rotating JSON log at this path.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// EngineConfig configures new engine sessions.
type EngineConfig struct {
	HistorySize   int     `mapstructure:"history_size"`
	Seed          uint64  `mapstructure:"seed"` // 0 = clock-seeded
	DefaultMonths float64 `mapstructure:"default_months"`
	KeepSnapshots int     `mapstructure:"keep_snapshots"`
}

// Default returns a Config with defaults for every key.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		Engine: EngineConfig{
			HistorySize:   100,
			DefaultMonths: 6,
			KeepSnapshots: 20,
		},
	}
}

// Load reads configuration. When path is empty, pathwise.yaml is looked up
// in $XDG_CONFIG_HOME/pathwise (or ~/.config/pathwise) and its absence is
// not an error. An explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("pathwise")
		v.SetConfigType("yaml")
		if dir, err := defaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []string
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Engine.HistorySize < 1 {
		errs = append(errs, fmt.Sprintf("engine.history_size must be positive, got %d", c.Engine.HistorySize))
	}
	if c.Engine.DefaultMonths <= 0 {
		errs = append(errs, fmt.Sprintf("engine.default_months must be positive, got %v", c.Engine.DefaultMonths))
	}
	if c.Engine.KeepSnapshots < 1 {
		errs = append(errs, fmt.Sprintf("engine.keep_snapshots must be positive, got %d", c.Engine.KeepSnapshots))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("engine.history_size", d.Engine.HistorySize)
	v.SetDefault("engine.seed", d.Engine.Seed)
	v.SetDefault("engine.default_months", d.Engine.DefaultMonths)
	v.SetDefault("engine.keep_snapshots", d.Engine.KeepSnapshots)
}

func defaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pathwise"), nil
}
