package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.SlicesPerTile != 16 {
		t.Errorf("expected 16 slices per tile, got %d", cfg.Terrain.SlicesPerTile)
	}
	if cfg.Terrain.Level != "level.json" {
		t.Errorf("expected level.json, got %s", cfg.Terrain.Level)
	}

	if cfg.Camera.EyeHeight != 0.5 {
		t.Errorf("expected eye height 0.5, got %f", cfg.Camera.EyeHeight)
	}
	if cfg.Camera.MoveSpeed != 1 {
		t.Errorf("expected move speed 1, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.TurnSpeed != 0.1 {
		t.Errorf("expected turn speed 0.1, got %f", cfg.Camera.TurnSpeed)
	}

	if cfg.Graphics.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 480 {
		t.Errorf("expected height 480, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terrain.yaml")

	yamlContent := `
terrain:
  level: "https://example.com/levels/hills.json"
  slices_per_tile: 8
  cache_dir: "/tmp/levels"

camera:
  eye_height: 1.5
  move_speed: 2
  fov: 75

graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Level != "https://example.com/levels/hills.json" {
		t.Errorf("unexpected level %s", cfg.Terrain.Level)
	}
	if cfg.Terrain.SlicesPerTile != 8 {
		t.Errorf("expected 8 slices, got %d", cfg.Terrain.SlicesPerTile)
	}
	if cfg.Terrain.CacheDir != "/tmp/levels" {
		t.Errorf("expected cache dir /tmp/levels, got %s", cfg.Terrain.CacheDir)
	}

	if cfg.Camera.EyeHeight != 1.5 {
		t.Errorf("expected eye height 1.5, got %f", cfg.Camera.EyeHeight)
	}
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Camera.FOV)
	}
	// Not in the file: keeps the default
	if cfg.Camera.TurnSpeed != 0.1 {
		t.Errorf("expected default turn speed 0.1, got %f", cfg.Camera.TurnSpeed)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
terrain:
  slices_per_tile: not a number
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

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero slices", func(c *Config) { c.Terrain.SlicesPerTile = 0 }},
		{"negative slices", func(c *Config) { c.Terrain.SlicesPerTile = -3 }},
		{"no level", func(c *Config) { c.Terrain.Level = "" }},
		{"inverted clip range", func(c *Config) { c.Camera.Near, c.Camera.Far = 10, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "terrain.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  slices_per_tile: 4\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find terrain.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "level flag",
			setup: func() { *flagLevel = "maps/valley.json" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Level != "maps/valley.json" {
					t.Errorf("expected level maps/valley.json, got %s", cfg.Terrain.Level)
				}
			},
			teardown: func() { *flagLevel = "" },
		},
		{
			name:  "slices flag",
			setup: func() { *flagSlices = 4 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.SlicesPerTile != 4 {
					t.Errorf("expected 4 slices, got %d", cfg.Terrain.SlicesPerTile)
				}
			},
			teardown: func() { *flagSlices = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
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

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terrain.yaml")

	yamlContent := `
terrain:
  level: "from-file.json"
  slices_per_tile: 8
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	*flagSlices = 2
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagSlices = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Terrain.SlicesPerTile != 2 {
		t.Errorf("expected 2 slices from flag, got %d", cfg.Terrain.SlicesPerTile)
	}
	if cfg.Terrain.Level != "from-file.json" {
		t.Errorf("expected level from file, got %s", cfg.Terrain.Level)
	}
	if cfg.Terrain.CacheDir == "" {
		t.Error("expected a default cache dir to be filled in")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "terrain.yaml")

	cfg := Default()
	cfg.Terrain.SlicesPerTile = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Terrain.SlicesPerTile != 12 {
		t.Errorf("expected 12 slices after reload, got %d", loaded.Terrain.SlicesPerTile)
	}
}
