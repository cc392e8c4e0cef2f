// Package config handles tool configuration loading and management.
package config

// Config holds all settings for the tileset tools.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds the data file paths the tools consume.
type DataConfig struct {
	Tileset  string `yaml:"tileset"` // tileset definition YAML
	Atlas    string `yaml:"atlas"`   // atlas manifest YAML
	Map      string `yaml:"map"`     // map YAML, empty for the generated demo map
	Rules    string `yaml:"rules"`   // entity rules YAML, optional
	AssetDir string `yaml:"assets"`  // directory sheet paths resolve against
}

// GraphicsConfig holds display settings for the viewer.
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
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Data: DataConfig{
			Tileset:  "data/tileset.yaml",
			Atlas:    "data/atlas.yaml",
			AssetDir: "data",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
