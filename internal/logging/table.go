// Package logging sets up the debug log and writes per-file edit reports.
// This file contains the column-aligned table used by the report sections.

package logging

import (
	"fmt"
	"math"
	"strings"

	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/media"
)

// Row is a single table row. Values are pre-formatted strings.
type Row struct {
	Label  string   // Row label, e.g. a segment number
	Values []string // One value per header
	Note   string   // Optional trailing note (only shown if non-empty)
}

// Table formats aligned columns.
type Table struct {
	Headers []string
	Rows    []Row
}

// String renders the table.
// - Labels are left-aligned
// - Values are right-aligned within their column
// - The note column is only shown if any row has one
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	hasNote := false
	for _, row := range t.Rows {
		if row.Note != "" {
			hasNote = true
			break
		}
	}

	labelWidth := 0
	for _, row := range t.Rows {
		labelWidth = max(labelWidth, len(row.Label))
	}

	valueWidths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		valueWidths[i] = len(header)
	}
	for _, row := range t.Rows {
		for i, val := range row.Values {
			if i < len(valueWidths) {
				valueWidths[i] = max(valueWidths[i], len(val))
			}
		}
	}

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", labelWidth+2))
	for i, header := range t.Headers {
		fmt.Fprintf(&sb, "%*s  ", valueWidths[i], header)
	}
	if hasNote {
		sb.WriteString("Note")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		fmt.Fprintf(&sb, "%-*s  ", labelWidth, row.Label)
		for i := range t.Headers {
			val := MissingValue
			if i < len(row.Values) && row.Values[i] != "" {
				val = row.Values[i]
			}
			fmt.Fprintf(&sb, "%*s  ", valueWidths[i], val)
		}
		if hasNote {
			sb.WriteString(row.Note)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// AddRow adds a row with pre-formatted values.
func (t *Table) AddRow(label string, values []string, note string) {
	t.Rows = append(t.Rows, Row{Label: label, Values: values, Note: note})
}

// NewSegmentTable renders a timeline as one row per segment with its status,
// timecodes and length in seconds. Quiet segments are noted as cuts.
func NewSegmentTable(timeline cuts.Timeline, fr media.FrameRate) *Table {
	t := &Table{
		Headers: []string{"Status", "Start", "End", "Frames", "Seconds"},
		Rows:    make([]Row, 0, len(timeline)),
	}
	for i, seg := range timeline {
		status, note := "loud", ""
		if seg.Quiet {
			status, note = "quiet", "cut"
		}
		t.AddRow(fmt.Sprintf("%d", i+1), []string{
			status,
			formatTimecode(seg.Start, fr),
			formatTimecode(seg.End, fr),
			fmt.Sprintf("%d", seg.Len()),
			formatMetric(float64(seg.Len())*fr.FrameLength(), 2),
		}, note)
	}
	return t
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// MissingValue is the placeholder for unavailable values.
const MissingValue = "-"

// formatMetric formats a value to the given number of decimals. NaN and Inf
// are shown as MissingValue.
func formatMetric(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

// formatMetricWithUnit combines value and unit for display.
func formatMetricWithUnit(value float64, decimals int, unit string) string {
	formatted := formatMetric(value, decimals)
	if formatted == MissingValue || unit == "" {
		return formatted
	}
	return formatted + " " + unit
}

// formatPercent formats part/whole as a percentage.
func formatPercent(part, whole cuts.Frame) string {
	if whole <= 0 {
		return MissingValue
	}
	return formatMetric(100*float64(part)/float64(whole), 1) + "%"
}

// formatTimecode renders a frame position as non-drop-frame HH:MM:SS:FF
// using the nominal (rounded) frame rate.
func formatTimecode(f cuts.Frame, fr media.FrameRate) string {
	nominal := int64(math.Round(fr.FPS()))
	if nominal <= 0 {
		return MissingValue
	}
	n := int64(f)
	frames := n % nominal
	secs := n / nominal
	return fmt.Sprintf("%02d:%02d:%02d:%02d", secs/3600, secs/60%60, secs%60, frames)
}
