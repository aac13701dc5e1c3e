// Package cli renders autocut's styled help, version and error output.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/autocut/internal/config"
)

var (
	cutRed   = lipgloss.Color("#A40000")
	dimGray  = lipgloss.Color("#888888")
	brightFg = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(cutRed).MarginBottom(1)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(cutRed)
	keyStyle   = lipgloss.NewStyle().Foreground(dimGray)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(brightFg)
)

// setting prints one aligned "key value" line.
func setting(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render(fmt.Sprintf("%-11s", key)), valueStyle.Render(value))
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, titleStyle.Render("Autocut ✂"))
	setting(w, "Version:", version)
	fmt.Fprintln(w)
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}

// PrintSettings prints the effective edit parameters, one per line.
func PrintSettings(w io.Writer, cfg *config.Config, audioFiles []string) {
	setting(w, "Threshold:", fmt.Sprintf("%.1f dB", cfg.Threshold))
	setting(w, "Min length:", fmt.Sprintf("%.2f s", cfg.MinLength))
	setting(w, "Margin:", fmt.Sprintf("%d frames", cfg.Margin))
	for i, path := range audioFiles {
		setting(w, fmt.Sprintf("Audio a%d:", i+1), path)
	}
	fmt.Fprintln(w)
}
