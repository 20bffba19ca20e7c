// Package config handles application configuration loading and management.
package config

import (
	"time"

	"github.com/frostbay/joyrig/internal/actor"
	"github.com/frostbay/joyrig/internal/joystick"
)

// Config holds all application settings.
type Config struct {
	Display DisplayConfig   `yaml:"display"`
	Serial  joystick.Config `yaml:"serial"`
	Model   ModelConfig     `yaml:"model"`
	Control actor.Tuning    `yaml:"control"`
	Logging LoggingConfig   `yaml:"logging"`
}

// DisplayConfig holds window and frame pacing settings.
type DisplayConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	TickRate   int    `yaml:"tick_rate"` // control loop ticks per second
}

// ModelConfig holds the 3D model settings.
type ModelConfig struct {
	Path  string  `yaml:"path"`
	Scale float32 `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      800,
			Height:     600,
			Title:      "JoyRig",
			Fullscreen: false,
			VSync:      true,
			TickRate:   60,
		},
		Serial: joystick.Config{
			Port:        "/dev/ttyUSB0",
			Baud:        38400,
			SettleDelay: 2 * time.Second,
			QueueSize:   32,
		},
		Model: ModelConfig{
			Path:  "model.obj",
			Scale: 0.01,
		},
		Control: actor.DefaultTuning(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
