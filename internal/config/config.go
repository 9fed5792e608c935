// Package config handles viewer and terrain configuration loading.
package config

// Config holds all settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds level and tessellation settings.
type TerrainConfig struct {
	Level         string `yaml:"level"`           // Local path or go-getter source URL
	SlicesPerTile int    `yaml:"slices_per_tile"` // Subdivisions per grid cell on each axis
	CacheDir      string `yaml:"cache_dir"`       // Where remote levels are fetched to
	Texture       string `yaml:"texture"`         // Ground texture image; empty uses a checker
}

// CameraConfig holds walk camera settings.
type CameraConfig struct {
	EyeHeight float32 `yaml:"eye_height"`
	MoveSpeed float32 `yaml:"move_speed"`
	TurnSpeed float32 `yaml:"turn_speed"`
	FOV       float32 `yaml:"fov"` // Vertical field of view in degrees
	Near      float32 `yaml:"near"`
	Far       float32 `yaml:"far"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Level:         "level.json",
			SlicesPerTile: 16,
			CacheDir:      "",
			Texture:       "terrain.png",
		},
		Camera: CameraConfig{
			EyeHeight: 0.5,
			MoveSpeed: 1,
			TurnSpeed: 0.1,
			FOV:       60,
			Near:      0.1,
			Far:       20,
		},
		Graphics: GraphicsConfig{
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
