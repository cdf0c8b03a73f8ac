package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file (or pass it as the first argument)")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagCallback    = flag.String("callback", "", "Exercise to run")
	flagDepth       = flag.Bool("depth", false, "Enable the depth buffer")
	flagPrintConfig = flag.Bool("print-config", false, "Print the effective config and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path from -config or the first
// positional argument.
func ConfigPath() string {
	if *flagConfig != "" {
		return *flagConfig
	}
	return flag.Arg(0)
}

// PrintConfig reports whether -print-config was given.
func PrintConfig() bool {
	return *flagPrintConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagCallback != "" {
		cfg.Scene.Callback = *flagCallback
	}
	if *flagDepth {
		cfg.Scene.Depth = true
	}
}
