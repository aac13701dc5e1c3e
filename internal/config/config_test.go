package config_test

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linuxmatters/autocut/internal/config"
	"github.com/linuxmatters/autocut/internal/cuts"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	if cfg.MinLength != 1.75 || cfg.Margin != 4 || cfg.Threshold != -50 {
		t.Errorf("Default() = %+v, want min_length 1.75, margin 4, threshold -50", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFromReader_EmptyIsDefault(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader(\"\") error = %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("LoadFromReader(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFromReader_Overlay(t *testing.T) {
	t.Parallel()
	yaml := `
min_length: 0.8
threshold: -42.5
log_level: debug
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.MinLength != 0.8 {
		t.Errorf("min_length = %v, want 0.8", cfg.MinLength)
	}
	if cfg.Threshold != -42.5 {
		t.Errorf("threshold = %v, want -42.5", cfg.Threshold)
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.Margin != config.DefaultMargin {
		t.Errorf("margin = %d, want default %d", cfg.Margin, config.DefaultMargin)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("ffmpeg_path = %q, want ffmpeg", cfg.FFmpegPath)
	}
}

func TestLoadFromReader_UnknownKey(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("min_lenght: 2\n"))
	if err == nil {
		t.Fatal("expected error for misspelt key, got nil")
	}
	if !strings.Contains(err.Error(), "min_lenght") {
		t.Errorf("error should name the key, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantMsg   string
		wantKinds bool // wraps cuts.ErrInvalidConfiguration
	}{
		{"negative margin", func(c *config.Config) { c.Margin = -1 }, "margin", true},
		{"negative min_length", func(c *config.Config) { c.MinLength = -0.5 }, "min_length", true},
		{"nan min_length", func(c *config.Config) { c.MinLength = math.NaN() }, "min_length", true},
		{"positive threshold", func(c *config.Config) { c.Threshold = 3 }, "threshold", false},
		{"threshold below floor", func(c *config.Config) { c.Threshold = -121 }, "threshold", false},
		{"negative workers", func(c *config.Config) { c.Workers = -2 }, "workers", false},
		{"bad log level", func(c *config.Config) { c.LogLevel = "verbose" }, "log_level", false},
		{"no ffmpeg", func(c *config.Config) { c.FFmpegPath = "" }, "ffmpeg_path", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error should mention %s, got: %v", tt.wantMsg, err)
			}
			if got := errors.Is(err, cuts.ErrInvalidConfiguration); got != tt.wantKinds {
				t.Errorf("errors.Is(err, ErrInvalidConfiguration) = %v, want %v", got, tt.wantKinds)
			}
		})
	}
}

func TestValidate_ThresholdKind(t *testing.T) {
	t.Parallel()
	for _, threshold := range []float64{3, -121, math.NaN()} {
		cfg := config.Default()
		cfg.Threshold = threshold
		err := cfg.Validate()
		if !errors.Is(err, config.ErrInvalidThreshold) {
			t.Errorf("Validate(threshold %v) = %v, want ErrInvalidThreshold", threshold, err)
		}
		if errors.Is(err, cuts.ErrInvalidConfiguration) {
			t.Errorf("Validate(threshold %v) should not report ErrInvalidConfiguration", threshold)
		}
	}
}

func TestValidate_JoinsAllErrors(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Margin = -1
	cfg.Threshold = 10
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"margin", "threshold", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %s, got: %v", want, err)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "autocut.yaml")
	if err := os.WriteFile(path, []byte("margin: 2\nworkers: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Margin != 2 || cfg.Workers != 3 {
		t.Errorf("Load() = %+v, want margin 2 workers 3", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestLoadExampleMatchesDefault(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join("..", "..", "autocut.example.yaml"))
	if err != nil {
		t.Fatalf("Load(example) error = %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("example config = %+v, want defaults %+v", cfg, config.Default())
	}
	if cfg.FFmpegPath != "ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("binary paths = %q, %q", cfg.FFmpegPath, cfg.FFprobePath)
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    config.LogLevel
		valid bool
		want  slog.Level
	}{
		{config.LogDebug, true, slog.LevelDebug},
		{config.LogInfo, true, slog.LevelInfo},
		{config.LogWarn, true, slog.LevelWarn},
		{config.LogError, true, slog.LevelError},
		{"trace", false, slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := tt.in.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.in, got, tt.valid)
		}
		if got := tt.in.Level(); got != tt.want {
			t.Errorf("%q.Level() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
