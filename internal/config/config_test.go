package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Display defaults
	if cfg.Display.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Display.Height)
	}
	if cfg.Display.Title != "JoyRig" {
		t.Errorf("expected title JoyRig, got %s", cfg.Display.Title)
	}
	if cfg.Display.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Display.TickRate)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Serial defaults
	if cfg.Serial.Baud != 38400 {
		t.Errorf("expected baud 38400, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.SettleDelay != 2*time.Second {
		t.Errorf("expected settle delay 2s, got %v", cfg.Serial.SettleDelay)
	}
	if cfg.Serial.QueueSize != 32 {
		t.Errorf("expected queue size 32, got %d", cfg.Serial.QueueSize)
	}

	// Model defaults
	if cfg.Model.Scale != 0.01 {
		t.Errorf("expected model scale 0.01, got %f", cfg.Model.Scale)
	}

	// Control defaults
	if cfg.Control.MovementSpeed != 0.1 {
		t.Errorf("expected movement speed 0.1, got %f", cfg.Control.MovementSpeed)
	}
	if cfg.Control.RotationSpeed != 2.0 {
		t.Errorf("expected rotation speed 2.0, got %f", cfg.Control.RotationSpeed)
	}
	if cfg.Control.JumpHeight != 0.2 {
		t.Errorf("expected jump height 0.2, got %f", cfg.Control.JumpHeight)
	}
	if cfg.Control.FallRate != 0.05 {
		t.Errorf("expected fall rate 0.05, got %f", cfg.Control.FallRate)
	}
	if cfg.Control.Deadzone != 0.1 {
		t.Errorf("expected deadzone 0.1, got %f", cfg.Control.Deadzone)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1024
  height: 768
  title: "Rig Test"
  vsync: false
  tick_rate: 30

serial:
  port: "COM12"
  baud: 115200
  settle_delay: 500ms
  queue_size: 8

model:
  path: "goku.obj"
  scale: 0.05

control:
  movement_speed: 0.2
  rotation_speed: 4.0
  jump_height: 0.3
  fall_rate: 0.1
  deadzone: 0.15

logging:
  level: "debug"
  log_file: "rig.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Display.Width)
	}
	if cfg.Display.Title != "Rig Test" {
		t.Errorf("expected title 'Rig Test', got %s", cfg.Display.Title)
	}
	if cfg.Display.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Display.TickRate != 30 {
		t.Errorf("expected tick rate 30, got %d", cfg.Display.TickRate)
	}

	if cfg.Serial.Port != "COM12" {
		t.Errorf("expected port COM12, got %s", cfg.Serial.Port)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("expected baud 115200, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.SettleDelay != 500*time.Millisecond {
		t.Errorf("expected settle delay 500ms, got %v", cfg.Serial.SettleDelay)
	}

	if cfg.Model.Path != "goku.obj" {
		t.Errorf("expected model goku.obj, got %s", cfg.Model.Path)
	}
	if cfg.Model.Scale != 0.05 {
		t.Errorf("expected scale 0.05, got %f", cfg.Model.Scale)
	}

	if cfg.Control.MovementSpeed != 0.2 {
		t.Errorf("expected movement speed 0.2, got %f", cfg.Control.MovementSpeed)
	}
	if cfg.Control.Deadzone != 0.15 {
		t.Errorf("expected deadzone 0.15, got %f", cfg.Control.Deadzone)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "rig.log" {
		t.Errorf("expected log file 'rig.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Serial.Port = "COM7"
	cfg.Model.Path = "robot.obj"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Serial.Port != "COM7" {
		t.Errorf("expected port COM7 after round trip, got %s", loaded.Serial.Port)
	}
	if loaded.Model.Path != "robot.obj" {
		t.Errorf("expected model robot.obj after round trip, got %s", loaded.Model.Path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "port and baud flags",
			setup: func() {
				*flagPort = "/dev/ttyACM0"
				*flagBaud = 9600
			},
			verify: func(cfg *Config) {
				if cfg.Serial.Port != "/dev/ttyACM0" {
					t.Errorf("expected port /dev/ttyACM0, got %s", cfg.Serial.Port)
				}
				if cfg.Serial.Baud != 9600 {
					t.Errorf("expected baud 9600, got %d", cfg.Serial.Baud)
				}
			},
			teardown: func() {
				*flagPort = ""
				*flagBaud = 0
			},
		},
		{
			name: "model flag",
			setup: func() {
				*flagModel = "teapot.obj"
			},
			verify: func(cfg *Config) {
				if cfg.Model.Path != "teapot.obj" {
					t.Errorf("expected model teapot.obj, got %s", cfg.Model.Path)
				}
			},
			teardown: func() {
				*flagModel = ""
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(cfg *Config) {
				if cfg.Display.Width != 1920 {
					t.Errorf("expected width 1920, got %d", cfg.Display.Width)
				}
				if cfg.Display.Height != 1080 {
					t.Errorf("expected height 1080, got %d", cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
serial:
  port: "/dev/ttyUSB1"
  baud: 57600
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file for the port, file wins for baud.
	*flagConfig = configPath
	*flagPort = "COM3"
	defer func() {
		*flagConfig = ""
		*flagPort = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Serial.Port != "COM3" {
		t.Errorf("expected port COM3 from flag, got %s", cfg.Serial.Port)
	}
	if cfg.Serial.Baud != 57600 {
		t.Errorf("expected baud 57600 from file, got %d", cfg.Serial.Baud)
	}
}
