// Package logging handles the debug log and per-file edit reports

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/autocut/internal/autocut"
	"github.com/linuxmatters/autocut/internal/cuts"
)

// writeSection writes a section header with title and dashed underline.
// The underline length matches the title length.
func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// ReportData contains all the information needed to generate an edit report
type ReportData struct {
	Result    *autocut.Result
	Options   autocut.Options
	StartTime time.Time
	EndTime   time.Time
}

// ReportPath returns where the report for input is written:
// talk.mkv → talk-autocut.log
func ReportPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "-autocut.log"
}

// GenerateReport writes the report for a finished edit next to its input.
//
// Report structure:
// 1. Header - file info and timestamp
// 2. Processing Summary - stage timings
// 3. Parameters - the values the edit was made with
// 4. Detection - silences found and kept
// 5. Timeline - cut totals and the segment table
func GenerateReport(data ReportData) error {
	if data.Result == nil {
		return fmt.Errorf("no result to report")
	}

	logPath := ReportPath(data.Result.Input)
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	WriteReport(f, data)
	return f.Close()
}

// WriteReport writes the report body to w.
func WriteReport(w io.Writer, data ReportData) {
	writeReportHeader(w, data)
	writeProcessingSummary(w, data)
	writeParameters(w, data)
	writeDetection(w, data)
	writeTimeline(w, data)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// writeReportHeader outputs the report header with file info and timestamp.
func writeReportHeader(w io.Writer, data ReportData) {
	res := data.Result
	fmt.Fprintln(w, "Autocut Edit Report")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "File: %s\n", filepath.Base(res.Input))
	fmt.Fprintf(w, "Project: %s\n", filepath.Base(res.OutputPath))
	fmt.Fprintf(w, "Processed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	if info := res.Info; info != nil {
		fmt.Fprintf(w, "Duration: %s (%d frames)\n", formatDuration(time.Duration(info.Duration*float64(time.Second))), info.TotalFrames())
		source := "video"
		if !info.HasVideo {
			source = "audio only, local broadcast rate"
		}
		fmt.Fprintf(w, "Frame rate: %s fps (%s)\n", info.FrameRate, source)
		fmt.Fprintf(w, "Resolution: %dx%d\n", info.Width, info.Height)
		fmt.Fprintf(w, "Audio tracks: %d\n", info.AudioTracks())
	}
	fmt.Fprintln(w, "")
}

// writeProcessingSummary outputs the time spent in each stage.
func writeProcessingSummary(w io.Writer, data ReportData) {
	writeSection(w, "Processing Summary")

	for _, s := range autocut.Stages {
		label := s.String() + ":"
		fmt.Fprintf(w, "%-20s %s\n", label, formatDuration(data.Result.Timings[s]))
	}

	totalTime := data.EndTime.Sub(data.StartTime)
	fmt.Fprintf(w, "%-20s %s", "Total:", formatDuration(totalTime))
	if info := data.Result.Info; info != nil && totalTime > 0 {
		mediaDuration := time.Duration(info.Duration * float64(time.Second))
		fmt.Fprintf(w, " (%.0fx real-time)", float64(mediaDuration)/float64(totalTime))
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "")
}

// writeParameters outputs the configured and effective edit parameters.
func writeParameters(w io.Writer, data ReportData) {
	res, opts := data.Result, data.Options
	writeSection(w, "Parameters")

	fmt.Fprintf(w, "Threshold:   %s\n", formatMetricWithUnit(opts.Threshold, 1, "dB"))
	fmt.Fprintf(w, "Min length:  %s (%d frames)\n", formatMetricWithUnit(opts.MinLength, 2, "s"), res.MinLength)
	if int(res.Margin) != opts.Margin {
		fmt.Fprintf(w, "Margin:      %d frames (capped from %d at half the min length)\n", res.Margin, opts.Margin)
	} else {
		fmt.Fprintf(w, "Margin:      %d frames\n", res.Margin)
	}
	fmt.Fprintf(w, "Detected on: %s\n", filepath.Base(res.DetectSource))

	if len(res.AudioFiles) > 0 {
		origin := "supplied"
		if res.Extracted {
			origin = "extracted from source"
		}
		fmt.Fprintf(w, "Audio lanes: %d (%s)\n", len(res.AudioFiles), origin)
		for i, path := range res.AudioFiles {
			fmt.Fprintf(w, "  a%d: %s\n", i+1, filepath.Base(path))
		}
	}
	fmt.Fprintln(w, "")
}

// writeDetection outputs the raw detections and the silences they became.
func writeDetection(w io.Writer, data ReportData) {
	res := data.Result
	writeSection(w, "Silence Detection")

	starts := 0
	for _, ev := range res.Events {
		if ev.Kind == cuts.EventStart {
			starts++
		}
	}
	fmt.Fprintf(w, "Silences reported: %d\n", starts)
	fmt.Fprintf(w, "Silences kept:     %d (after margin trimming)\n", len(res.Intervals))
	fmt.Fprintln(w, "")
}

// writeTimeline outputs cut totals and the segment table.
func writeTimeline(w io.Writer, data ReportData) {
	res := data.Result
	writeSection(w, "Timeline")

	total := res.Timeline.Duration()
	quiet, loud := res.Timeline.Counts()
	fmt.Fprintf(w, "Segments: %d quiet, %d loud\n", quiet, loud)
	fmt.Fprintf(w, "Quiet:    %d frames (%s)\n", res.Timeline.QuietFrames(), formatPercent(res.Timeline.QuietFrames(), total))
	fmt.Fprintf(w, "Loud:     %d frames (%s)\n", res.Timeline.LoudFrames(), formatPercent(res.Timeline.LoudFrames(), total))
	fmt.Fprintln(w, "")

	if res.Info != nil {
		fmt.Fprint(w, NewSegmentTable(res.Timeline, res.Info.FrameRate).String())
	}
}
