package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linuxmatters/autocut/internal/cuts"
)

// ErrInvalidThreshold reports a noise floor outside [MinThreshold, 0] dB.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates the
// result. Unknown keys are rejected. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns all violations joined. Length
// violations wrap cuts.ErrInvalidConfiguration; a bad threshold wraps
// ErrInvalidThreshold.
func (c *Config) Validate() error {
	var errs []error

	if math.IsNaN(c.MinLength) || math.IsInf(c.MinLength, 0) || c.MinLength < 0 {
		errs = append(errs, fmt.Errorf("%w: min_length %v must be a non-negative number of seconds", cuts.ErrInvalidConfiguration, c.MinLength))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("%w: margin %d must not be negative", cuts.ErrInvalidConfiguration, c.Margin))
	}
	if math.IsNaN(c.Threshold) || c.Threshold < MinThreshold || c.Threshold > 0 {
		errs = append(errs, fmt.Errorf("%w: threshold %v dB is out of range [%v, 0]", ErrInvalidThreshold, c.Threshold, MinThreshold))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if c.LogLevel != "" && !c.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", c.LogLevel))
	}
	if c.FFmpegPath == "" {
		errs = append(errs, errors.New("ffmpeg_path is required"))
	}
	if c.FFprobePath == "" {
		errs = append(errs, errors.New("ffprobe_path is required"))
	}

	return errors.Join(errs...)
}
