// Package detect runs ffmpeg's silencedetect and volumedetect filters and
// turns their log output into detection events and loudness verdicts.
package detect

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/media"
)

// ErrMalformedOutput is returned when ffmpeg prints a detection line whose
// value cannot be parsed.
var ErrMalformedOutput = errors.New("malformed detector output")

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(\S+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*([^\s|]+)`)
	maxVolumeRe    = regexp.MustCompile(`max_volume:\s*(\S+)\s*dB`)
)

// Detector runs ffmpeg analysis filters over a media file.
type Detector struct {
	Runner media.Runner
	FFmpeg string // path to the ffmpeg binary
}

// SilenceDetectFilter builds the silencedetect filter string for a noise
// threshold in dB and a minimum silence length in seconds.
func SilenceDetectFilter(thresholdDB, minSeconds float64) string {
	return fmt.Sprintf("silencedetect=noise=%sdB:duration=%.3f",
		strconv.FormatFloat(thresholdDB, 'f', -1, 64), minSeconds)
}

// Detect scans the audio of source for silences at least minSeconds long
// and quieter than thresholdDB. Events come back in the order ffmpeg
// reported them; a silence that runs to the end of the file may be left
// open (see cuts.CloseAt).
func (d *Detector) Detect(ctx context.Context, source string, thresholdDB, minSeconds float64) ([]cuts.DetectionEvent, error) {
	filter := SilenceDetectFilter(thresholdDB, minSeconds)
	slog.Debug("running silence detection", "source", source, "filter", filter)

	_, stderr, err := d.Runner.Run(ctx, d.FFmpeg,
		"-hide_banner",
		"-nostats",
		"-i", source,
		"-vn", "-sn", "-dn",
		"-af", filter,
		"-f", "null",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("silencedetect on %s: %w", source, err)
	}

	events, err := ParseEvents(bytes.NewReader(stderr))
	if err != nil {
		return nil, fmt.Errorf("silencedetect on %s: %w", source, err)
	}
	slog.Debug("silence detection finished", "source", source, "events", len(events))
	return events, nil
}

// ParseEvents extracts silence_start and silence_end events from ffmpeg's
// log output. Other lines are ignored.
func ParseEvents(r io.Reader) ([]cuts.DetectionEvent, error) {
	var events []cuts.DetectionEvent

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			v, err := parseTimestamp(m[1])
			if err != nil {
				return nil, err
			}
			events = append(events, cuts.Start(v))
		} else if m := silenceEndRe.FindStringSubmatch(line); m != nil {
			v, err := parseTimestamp(m[1])
			if err != nil {
				return nil, err
			}
			events = append(events, cuts.End(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read detector output: %w", err)
	}
	return events, nil
}

func parseTimestamp(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: timestamp %q", ErrMalformedOutput, s)
	}
	return v, nil
}

// SectionIsQuiet reports whether the loudest sample of source between
// startSec and endSec stays below thresholdDB. The window is rounded to
// centiseconds, the precision ffmpeg seeks at.
func (d *Detector) SectionIsQuiet(ctx context.Context, source string, startSec, endSec, thresholdDB float64) (bool, error) {
	_, stderr, err := d.Runner.Run(ctx, d.FFmpeg,
		"-hide_banner",
		"-nostats",
		"-ss", formatSeek(startSec),
		"-to", formatSeek(endSec),
		"-i", source,
		"-vn", "-sn", "-dn",
		"-af", "volumedetect",
		"-f", "null",
		"-",
	)
	if err != nil {
		return false, fmt.Errorf("volumedetect on %s: %w", source, err)
	}

	maxVolume, found, err := ParseMaxVolume(bytes.NewReader(stderr))
	if err != nil {
		return false, fmt.Errorf("volumedetect on %s: %w", source, err)
	}
	if !found {
		// Nothing decoded in the window: keep the lane rather than drop audio.
		return false, nil
	}
	return maxVolume < thresholdDB, nil
}

// ParseMaxVolume finds the max_volume reported by volumedetect. found is
// false when no such line exists. Digital silence is reported as -inf.
func ParseMaxVolume(r io.Reader) (maxVolume float64, found bool, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := maxVolumeRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], "-inf") {
			return math.Inf(-1), true, nil
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: max_volume %q", ErrMalformedOutput, m[1])
		}
		return v, true, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, false, fmt.Errorf("failed to read detector output: %w", err)
	}
	return 0, false, nil
}

func formatSeek(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds*100)/100, 'f', 2, 64)
}
