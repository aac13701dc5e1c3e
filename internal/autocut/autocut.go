// Package autocut runs the full edit for one source file: probe it, find its
// silences, turn them into a quiet/loud timeline and write that timeline as
// an FCPXML project next to the source.
package autocut

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linuxmatters/autocut/internal/config"
	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/detect"
	"github.com/linuxmatters/autocut/internal/fcpxml"
	"github.com/linuxmatters/autocut/internal/media"
)

// Stage identifies a step of Process.
type Stage int

const (
	StageProbe Stage = iota
	StageDetect
	StageBuild
	StageExtract
	StageWrite
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageProbe, StageDetect, StageBuild, StageExtract, StageWrite}

func (s Stage) String() string {
	switch s {
	case StageProbe:
		return "Probing"
	case StageDetect:
		return "Detecting silence"
	case StageBuild:
		return "Building timeline"
	case StageExtract:
		return "Extracting audio"
	case StageWrite:
		return "Writing project"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ProgressFunc receives progress updates. progress runs from 0 to 1 within
// a stage.
type ProgressFunc func(stage Stage, progress float64)

// Options configures Process.
type Options struct {
	MinLength float64 // seconds
	Margin    int     // frames
	Threshold float64 // dB
	Workers   int

	// AudioFiles are separately recorded tracks, e.g. one per speaker.
	// Silence is detected on the first one; all of them are laid under the
	// loud clips. When empty, detection runs on the source and its own
	// audio tracks are extracted for the lanes.
	AudioFiles []string

	FFmpeg  string
	FFprobe string

	// Runner executes ffmpeg and ffprobe. Nil means media.ExecRunner.
	Runner media.Runner
}

// OptionsFromConfig builds Options from a validated config.
func OptionsFromConfig(cfg *config.Config, audioFiles []string) Options {
	return Options{
		MinLength:  cfg.MinLength,
		Margin:     cfg.Margin,
		Threshold:  cfg.Threshold,
		Workers:    cfg.Workers,
		AudioFiles: audioFiles,
		FFmpeg:     cfg.FFmpegPath,
		FFprobe:    cfg.FFprobePath,
	}
}

// Result describes a finished edit.
type Result struct {
	Input      string
	OutputPath string
	Info       *media.Info

	// DetectSource is the file silence was detected on.
	DetectSource string

	// AudioFiles are the lanes attached to loud clips. Extracted is true
	// when they were pulled out of the source rather than supplied.
	AudioFiles []string
	Extracted  bool

	MinLength cuts.Frame
	Margin    cuts.Frame // after capping at half of MinLength

	Events    []cuts.DetectionEvent
	Intervals []cuts.SilenceInterval
	Timeline  cuts.Timeline

	Timings   map[Stage]time.Duration
	TotalTime time.Duration
}

// Process edits input and writes <input>.fcpxml. Every stage failure is
// fatal; nothing is retried. progress may be nil.
func Process(ctx context.Context, input string, opts Options, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(Stage, float64) {}
	}
	runner := opts.Runner
	if runner == nil {
		runner = media.ExecRunner{}
	}

	startTime := time.Now()
	result := &Result{
		Input:   input,
		Timings: make(map[Stage]time.Duration, len(Stages)),
	}
	stage := func(s Stage, fn func() error) error {
		progress(s, 0)
		t := time.Now()
		err := fn()
		result.Timings[s] = time.Since(t)
		if err == nil {
			progress(s, 1)
		}
		return err
	}

	// Probe
	prober := &media.Prober{Runner: runner, FFprobe: opts.FFprobe}
	err := stage(StageProbe, func() error {
		info, err := prober.Probe(ctx, input)
		result.Info = info
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("probe failed: %w", err)
	}
	info := result.Info
	frameLength := info.FrameRate.FrameLength()
	total := info.TotalFrames()

	result.MinLength = cuts.FramesFromSeconds(opts.MinLength, frameLength)
	result.Margin = cuts.EffectiveMargin(result.MinLength, cuts.Frame(opts.Margin))
	slog.Info("probed source",
		"input", input,
		"fps", info.FrameRate.String(),
		"duration", info.Duration,
		"frames", total,
		"audio_tracks", info.AudioTracks(),
		"min_length_frames", result.MinLength,
		"margin_frames", result.Margin,
	)

	// Detect
	detector := &detect.Detector{Runner: runner, FFmpeg: opts.FFmpeg}
	result.DetectSource = input
	if len(opts.AudioFiles) > 0 {
		result.DetectSource = opts.AudioFiles[0]
	}
	err = stage(StageDetect, func() error {
		// Frame-aligned minimum.
		minSeconds := float64(result.MinLength) * frameLength
		events, err := detector.Detect(ctx, result.DetectSource, opts.Threshold, minSeconds)
		result.Events = events
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("silence detection failed: %w", err)
	}

	// Build
	err = stage(StageBuild, func() error {
		events := cuts.CloseAt(result.Events, info.Duration)
		intervals, err := cuts.Normalize(events, cuts.NormalizeParams{
			MinLength:   result.MinLength,
			Margin:      cuts.Frame(opts.Margin),
			FrameLength: frameLength,
		})
		if err != nil {
			return err
		}
		result.Intervals = clampIntervals(intervals, total)

		timeline, err := cuts.Build(result.Intervals, result.MinLength, total)
		if err != nil {
			return err
		}
		result.Timeline = timeline
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("timeline build failed: %w", err)
	}
	quiet, loud := result.Timeline.Counts()
	slog.Info("timeline built", "input", input, "silences", len(result.Intervals), "quiet_segments", quiet, "loud_segments", loud)

	// Extract
	result.AudioFiles = opts.AudioFiles
	err = stage(StageExtract, func() error {
		if len(opts.AudioFiles) > 0 || !info.HasVideo {
			return nil
		}
		extractor := &media.Extractor{Runner: runner, FFmpeg: opts.FFmpeg, Workers: opts.Workers}
		paths, err := extractor.ExtractAudio(ctx, info)
		if err != nil {
			return err
		}
		result.AudioFiles = paths
		result.Extracted = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("audio extraction failed: %w", err)
	}

	// Write
	result.OutputPath = fcpxml.Path(input)
	err = stage(StageWrite, func() error {
		builder := &fcpxml.Builder{Lanes: detector, Workers: opts.Workers}
		doc, err := builder.Build(ctx, fcpxml.Edit{
			Source:     input,
			Info:       info,
			Timeline:   result.Timeline,
			AudioFiles: result.AudioFiles,
			Threshold:  opts.Threshold,
		})
		if err != nil {
			return err
		}
		return doc.WriteFile(result.OutputPath)
	})
	if err != nil {
		return nil, fmt.Errorf("project write failed: %w", err)
	}

	result.TotalTime = time.Since(startTime)
	slog.Info("project written", "input", input, "output", result.OutputPath, "elapsed", result.TotalTime)
	return result, nil
}

// clampIntervals trims silences to the media length. The audio stream can
// run a few frames past the container duration.
func clampIntervals(intervals []cuts.SilenceInterval, total cuts.Frame) []cuts.SilenceInterval {
	out := make([]cuts.SilenceInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Start >= total {
			slog.Debug("dropping silence past end of media", "interval_start", iv.Start, "frames", total)
			continue
		}
		iv.End = min(iv.End, total)
		out = append(out, iv)
	}
	return out
}
