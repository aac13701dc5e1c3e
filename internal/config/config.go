// Package config holds autocut's tunable parameters and loads them from a
// YAML file.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to a slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the full set of editing and runtime parameters.
type Config struct {
	// MinLength is the shortest silence, in seconds, that becomes a cut.
	// Loud stretches no longer than this between two silences are cut too.
	MinLength float64 `yaml:"min_length"`

	// Margin is the number of frames of silence kept on each side of a cut.
	Margin int `yaml:"margin"`

	// Threshold is the noise floor in dB; anything quieter is silence.
	Threshold float64 `yaml:"threshold"`

	// Workers bounds concurrent ffmpeg processes. 0 means one per CPU.
	Workers int `yaml:"workers"`

	LogLevel LogLevel `yaml:"log_level"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// Defaults.
const (
	DefaultMinLength = 1.75
	DefaultMargin    = 4
	DefaultThreshold = -50.0

	// MinThreshold is the quietest accepted threshold.
	MinThreshold = -120.0
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinLength:   DefaultMinLength,
		Margin:      DefaultMargin,
		Threshold:   DefaultThreshold,
		LogLevel:    LogInfo,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}
