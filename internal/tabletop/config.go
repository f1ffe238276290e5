package tabletop

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the app configuration, read from an optional tablefog.yaml
// with defaults for every key. Only the interactive shell consumes it; the
// harness and fog-report stay config-free.
type Config struct {
	Window struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"window"`
	AutoPan struct {
		Border     float64 `mapstructure:"border"`
		IntervalMS int     `mapstructure:"interval_ms"`
		Step       float64 `mapstructure:"step"`
	} `mapstructure:"autopan"`
	Log struct {
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
	Cache struct {
		MaxCostMB int `mapstructure:"max_cost_mb"`
	} `mapstructure:"cache"`
	Demo struct {
		Seed int64 `mapstructure:"seed"`
	} `mapstructure:"demo"`
}

// PanSettings converts the auto-pan keys into editor tuning.
func (c Config) PanSettings() PanSettings {
	return PanSettings{
		Border:   c.AutoPan.Border,
		Interval: time.Duration(c.AutoPan.IntervalMS) * time.Millisecond,
		Step:     c.AutoPan.Step,
	}
}

// LoadConfig reads tablefog.yaml from dir ("." when empty). A missing file
// is fine and yields the defaults; a malformed one is an error.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("tablefog")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("autopan.border", 30.0)
	v.SetDefault("autopan.interval_ms", 100)
	v.SetDefault("autopan.step", 24.0)
	v.SetDefault("log.file", "tablefog.log")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("cache.max_cost_mb", 64)
	v.SetDefault("demo.seed", 1)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
