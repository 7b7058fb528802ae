// Package config holds runtime settings loaded from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes how the game runs: where content lives and the timing
// constants the sequencing core uses.
type Config struct {
	ManifestPath string `env:"HOMEBOUND_MANIFEST" envDefault:"assets/game_manifest.json"`
	AssetsDir    string `env:"HOMEBOUND_ASSETS" envDefault:"assets"`
	LocaleDir    string `env:"HOMEBOUND_LOCALE_DIR" envDefault:"locales"`
	Language     string `env:"HOMEBOUND_LANG" envDefault:"en_GB"`

	Environment string `env:"HOMEBOUND_ENV" envDefault:"development"`
	LogLevelRaw string `env:"HOMEBOUND_LOG_LEVEL" envDefault:"info"`

	// Overlay opacity advances by elapsedSeconds * FadeSpeed per tick.
	FadeSpeed          float64       `env:"HOMEBOUND_FADE_SPEED" envDefault:"2"`
	SettleDelay        time.Duration `env:"HOMEBOUND_SETTLE_DELAY" envDefault:"200ms"`
	DialogueTimeout    time.Duration `env:"HOMEBOUND_DIALOGUE_TIMEOUT" envDefault:"1s"`
	TypewriterInterval time.Duration `env:"HOMEBOUND_TYPEWRITER_INTERVAL" envDefault:"20ms"`
	ClickDebounce      time.Duration `env:"HOMEBOUND_CLICK_DEBOUNCE" envDefault:"250ms"`
	LoadingTimeout     time.Duration `env:"HOMEBOUND_LOADING_TIMEOUT" envDefault:"15s"`
	MinLoadingShow     time.Duration `env:"HOMEBOUND_MIN_LOADING_SHOW" envDefault:"500ms"`

	StartRoomID string `env:"HOMEBOUND_START_ROOM" envDefault:"kitchen"`

	WindowWidth  int `env:"HOMEBOUND_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int `env:"HOMEBOUND_WINDOW_HEIGHT" envDefault:"720"`
	TickRate     int `env:"HOMEBOUND_TPS" envDefault:"60"`
}

// Load parses the environment into a Config with defaults applied.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with every default applied and no
// environment lookups.
func Default() *Config {
	cfg := &Config{}
	// Parsing an empty environment only applies envDefault tags.
	if err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Validate rejects settings the sequencing core cannot run with.
func (c *Config) Validate() error {
	if c.FadeSpeed <= 0 {
		return fmt.Errorf("fade speed must be positive, got %v", c.FadeSpeed)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.SettleDelay < 0 || c.DialogueTimeout < 0 || c.TypewriterInterval < 0 || c.ClickDebounce < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	return ParseLogLevel(c.LogLevelRaw)
}

// TickDuration is the fixed frame time at the configured tick rate.
func (c *Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
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
