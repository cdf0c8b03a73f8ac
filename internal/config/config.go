// Package config handles exercise configuration loading and management.
package config

import "time"

// Config holds all harness settings.
type Config struct {
	Scene       SceneConfig      `yaml:"scene"`
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Transitions TransitionConfig `yaml:"transitions"`
	Colors      ColorConfig      `yaml:"colors"`
	Logging     LoggingConfig    `yaml:"logging"`
	Debug       DebugConfig      `yaml:"debug"`

	// Path is the file the config was loaded from
	Path string `yaml:"-"`
}

// SceneConfig describes what is loaded and drawn.
type SceneConfig struct {
	DefaultObject string        `yaml:"default_object"`
	Phases        *int          `yaml:"phases,omitempty"` // Cap for NextPhase; unset means no cap
	Callback      string        `yaml:"callback"`         // Registered exercise name
	Depth         bool          `yaml:"depth"`            // Enable the depth buffer
	ObjFiles      []string      `yaml:"obj_files"`        // Relative to the config file
	FitObjects    []string      `yaml:"fit_objects"`      // Objects framed at startup; empty means all
	Sequence      []Instruction `yaml:"sequence"`         // Per-frame drawing steps
	Center        *Point        `yaml:"center,omitempty"` // Overrides the fitted view center
	Bounds        *Rect         `yaml:"bounds,omitempty"` // Overrides the fitted region
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Title       string  `yaml:"title"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	VSync       bool    `yaml:"vsync"`
	GridSpacing float32 `yaml:"grid_spacing"` // 0 picks a spacing from the zoom level
}

// TransitionConfig holds display toggle animation durations.
type TransitionConfig struct {
	Fast time.Duration `yaml:"fast"`
	Slow time.Duration `yaml:"slow"`
}

// ColorConfig holds the colors of the display toggles in their visible
// state. Hidden states use the same color with zero alpha.
type ColorConfig struct {
	Background  Color `yaml:"background"`
	Wireframe   Color `yaml:"wireframe"`
	PointBorder Color `yaml:"point_border"`
	PointFill   Color `yaml:"point_fill"`
	Target      Color `yaml:"target"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Sequence: []Instruction{{Command: CmdUserCallback}},
		},
		Graphics: GraphicsConfig{
			Title:       "Computer Graphics",
			Width:       400,
			Height:      400,
			VSync:       true,
			GridSpacing: 1,
		},
		Transitions: TransitionConfig{
			Fast: 100 * time.Millisecond,
			Slow: 500 * time.Millisecond,
		},
		Colors: ColorConfig{
			Background:  Color{0.1, 0.1, 0.1, 1},
			Wireframe:   Color{1, 1, 0, 1},
			PointBorder: Color{0, 0, 0, 1},
			PointFill:   Color{1, 0, 0, 1},
			Target:      Color{0, 0.4, 0.8, 1},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
