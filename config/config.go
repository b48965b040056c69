package config

// Config contains the engine's display configuration
type Config struct {
	Width  int
	Height int
}

// Global configuration instances
var C *Config
var Debug DebugConfig

// DebugConfig contains debug/testing options
type DebugConfig struct {
	ShowActionOverlay bool // Draw the live action value overlay
	ShowInspector     bool // Show the bindings inspector panel on startup
}

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Debug = DebugConfig{
		ShowActionOverlay: true,
	}
}
