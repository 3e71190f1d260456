// Package config loads window, game and logging settings. Sources are
// applied in order: defaults, then a YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Game    GameConfig    `yaml:"game"`
	Dev     DevConfig     `yaml:"dev"`
	Logging LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type GameConfig struct {
	Level    string `yaml:"level"`
	Debug    bool   `yaml:"debug"`
	ShowGrid bool   `yaml:"show_grid"`
	// GridSize overrides the level's grid spacing when positive.
	GridSize float64 `yaml:"grid_size"`
	TPS      int     `yaml:"tps"`
}

// DevConfig holds settings for iterating on prefabs and levels.
type DevConfig struct {
	WatchPrefabs bool `yaml:"watch_prefabs"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  960,
			Height: 720,
			Title:  "heighthop",
		},
		Game: GameConfig{
			Level:    "default",
			ShowGrid: true,
			TPS:      60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Game.Level == "" {
		return fmt.Errorf("%w: game.level is empty", ErrInvalidConfig)
	}
	if c.Game.TPS <= 0 {
		return fmt.Errorf("%w: game.tps must be positive, got %d", ErrInvalidConfig, c.Game.TPS)
	}
	if c.Game.GridSize < 0 {
		return fmt.Errorf("%w: game.grid_size must not be negative", ErrInvalidConfig)
	}
	if lvl := strings.TrimSpace(c.Logging.Level); lvl != "" {
		if _, err := zapcore.ParseLevel(lvl); err != nil {
			return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
