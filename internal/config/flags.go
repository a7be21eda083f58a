package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagOut    = flag.String("out", "", "Output directory for baked files")
	flagRes    = flag.String("res", "", "Pack outputs into this bbolt resource file")
	flagStart  = flag.Int("start", 0, "Frame start override")
	flagEnd    = flag.Int("end", 0, "Frame end override")
	flagStep   = flag.Int("step", 0, "Frame step override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagRes != "" {
		cfg.Output.ResourceFile = *flagRes
	}
	if *flagStart != 0 {
		cfg.Frames.Start = *flagStart
	}
	if *flagEnd != 0 {
		cfg.Frames.End = *flagEnd
	}
	if *flagStep != 0 {
		cfg.Frames.Step = *flagStep
	}
}
