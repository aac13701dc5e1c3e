package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/autocut/internal/autocut"
	"github.com/linuxmatters/autocut/internal/fcpxml"
)

var (
	accentColor  = lipgloss.Color("#A40000")
	activeColor  = lipgloss.Color("#FFA500")
	successColor = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
)

// renderProcessingView renders the main processing view
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	b.WriteString(renderFileQueue(m))
	b.WriteString("\n\n")

	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Render("Autocut ✂ - Silence to Timeline")

	subtitle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true).
		Render(fmt.Sprintf("Cutting %d file(s)", m.TotalFiles))

	return title + "\n" + subtitle
}

// renderFileQueue renders the list of files with their status
func renderFileQueue(m Model) string {
	var b strings.Builder

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFileEntry renders a single file entry in the queue
func renderFileEntry(file FileProgress) string {
	fileName := filepath.Base(file.InputPath)

	switch {
	case file.Status == StatusComplete:
		icon := lipgloss.NewStyle().Foreground(successColor).Render("✓")
		return fmt.Sprintf(" %s %s → %s\n   %s", icon, fileName, filepath.Base(file.OutputPath), segmentSummary(file))

	case file.Status.Active():
		icon := lipgloss.NewStyle().Foreground(activeColor).Render("⚙")
		return fmt.Sprintf(" %s %s → %s\n%s",
			icon, fileName, filepath.Base(fcpxml.Path(file.InputPath)),
			renderFileDetails(file))

	case file.Status == StatusError:
		icon := lipgloss.NewStyle().Foreground(accentColor).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, fileName, file.Error)

	default:
		icon := lipgloss.NewStyle().Foreground(mutedColor).Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, fileName)
	}
}

// segmentSummary describes what the edit cut from a finished file.
func segmentSummary(file FileProgress) string {
	pct := 0.0
	if file.TotalSeconds > 0 {
		pct = 100 * file.QuietSeconds / file.TotalSeconds
	}
	return fmt.Sprintf("%d quiet | %d loud | %.1fs of %.1fs quiet (%.0f%%)",
		file.QuietSegments, file.LoudSegments, file.QuietSeconds, file.TotalSeconds, pct)
}

// renderFileDetails renders detailed progress for the active file
func renderFileDetails(file FileProgress) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(60)

	var content strings.Builder

	fmt.Fprintf(&content, "Stage %d/%d: %s\n", int(file.Stage)+1, len(autocut.Stages), file.Stage)
	content.WriteString(renderProgressBar(stageFraction(file), 40))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "⏱  Elapsed: %.1fs", file.ElapsedTime.Seconds())

	return box.Render(content.String())
}

// stageFraction converts stage progress to overall progress for the file.
func stageFraction(file FileProgress) float64 {
	n := float64(len(autocut.Stages))
	return min(1, (float64(file.Stage)+file.Progress)/n)
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the overall progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(60)

	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
		content = fmt.Sprintf("Cutting file %d of %d (%d complete)",
			m.CurrentIndex+1, m.TotalFiles, m.CompletedFiles)
	} else {
		content = fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedFiles, m.TotalFiles)
	}

	return box.Render(content)
}

// renderCompletionSummary renders the final completion summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor).
		Render("✨ Cutting Complete!")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, file := range m.Files {
		switch file.Status {
		case StatusComplete, StatusError:
			b.WriteString(renderFileEntry(file))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %d project(s) written", m.CompletedFiles, m.TotalFiles)
	if m.FailedFiles > 0 {
		fmt.Fprintf(&b, ", %d failed", m.FailedFiles)
	}
	b.WriteString("\n")
	b.WriteString("Import the .fcpxml into your editor; quiet clips sit on lane 1, ready to delete.\n")

	return b.String()
}

// PlainProgress returns a ProgressFunc that prints one line per finished
// stage, for runs without the TUI.
func PlainProgress(w io.Writer, input string) autocut.ProgressFunc {
	name := filepath.Base(input)
	return func(stage autocut.Stage, progress float64) {
		if progress < 1 {
			return
		}
		fmt.Fprintf(w, "%s %s: %s\n", lipgloss.NewStyle().Foreground(mutedColor).Render("·"), name, stage)
	}
}

// RenderResultLine renders the one-line outcome of a file for plain output.
func RenderResultLine(input string, res *autocut.Result, err error) string {
	fp := completeFile(FileProgress{InputPath: input}, FileCompleteMsg{Result: res, Error: err})
	return renderFileEntry(fp)
}
