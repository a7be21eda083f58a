// Package config handles bake tool configuration loading and
// management.
package config

import "github.com/buchananwill/JRB-unreal-tools/internal/bake"

// Config holds all tool settings.
type Config struct {
	Frames  bake.FrameRange `yaml:"frames"`
	Output  OutputConfig    `yaml:"output"`
	Logging LoggingConfig   `yaml:"logging"`
}

// OutputConfig holds output destinations and texture options.
type OutputConfig struct {
	Dir          string `yaml:"dir"`           // directory for EXR/GLB files
	ResourceFile string `yaml:"resource_file"` // optional bbolt resource database
	HalfNormals  bool   `yaml:"half_normals"`  // store the normal texture as 16-bit floats
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Frames: bake.FrameRange{
			Start: 1,
			End:   250,
			Step:  1,
		},
		Output: OutputConfig{
			Dir:         ".",
			HalfNormals: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
