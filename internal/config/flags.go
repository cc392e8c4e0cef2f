package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagTileset    = flag.String("tileset", "", "Path to tileset definition")
	flagAtlas      = flag.String("atlas", "", "Path to atlas manifest")
	flagMap        = flag.String("map", "", "Path to map file")
	flagRules      = flag.String("rules", "", "Path to entity rules")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTileset != "" {
		cfg.Data.Tileset = *flagTileset
	}
	if *flagAtlas != "" {
		cfg.Data.Atlas = *flagAtlas
	}
	if *flagMap != "" {
		cfg.Data.Map = *flagMap
	}
	if *flagRules != "" {
		cfg.Data.Rules = *flagRules
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
