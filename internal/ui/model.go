// Package ui provides the Bubbletea terminal user interface for autocut
package ui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/autocut/internal/autocut"
)

// FileStatus represents the processing state of a single file
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusProbing
	StatusDetecting
	StatusBuilding
	StatusExtracting
	StatusWriting
	StatusComplete
	StatusError
)

// statusForStage maps a pipeline stage to the status shown while it runs.
func statusForStage(s autocut.Stage) FileStatus {
	switch s {
	case autocut.StageProbe:
		return StatusProbing
	case autocut.StageDetect:
		return StatusDetecting
	case autocut.StageBuild:
		return StatusBuilding
	case autocut.StageExtract:
		return StatusExtracting
	case autocut.StageWrite:
		return StatusWriting
	}
	return StatusQueued
}

// Active reports whether the file is being worked on.
func (s FileStatus) Active() bool {
	return s > StatusQueued && s < StatusComplete
}

// FileProgress tracks progress for a single input file
type FileProgress struct {
	InputPath  string
	OutputPath string
	Status     FileStatus

	Stage     autocut.Stage
	Progress  float64 // 0.0 to 1.0 within the stage
	StartTime time.Time

	// Completion results
	QuietSegments int
	LoudSegments  int
	QuietSeconds  float64
	TotalSeconds  float64
	ElapsedTime   time.Duration

	Error error
}

// Model is the Bubbletea model for the processing UI
type Model struct {
	// File queue
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	// Global state
	StartTime time.Time
	Done      bool

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model with the given input files
func NewModel(inputFiles []string) Model {
	files := make([]FileProgress, len(inputFiles))
	for i, path := range inputFiles {
		files[i] = FileProgress{
			InputPath: path,
			Status:    StatusQueued,
		}
	}

	return Model{
		Files:        files,
		CurrentIndex: -1, // No file processing yet
		TotalFiles:   len(inputFiles),
		StartTime:    time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ProgressMsg:
		if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
			m.Files[m.CurrentIndex] = updateFileProgress(m.Files[m.CurrentIndex], msg)
		}

	case FileStartMsg:
		slog.Debug("file started", "index", msg.FileIndex, "file", msg.FileName)
		if msg.FileIndex < 0 || msg.FileIndex >= len(m.Files) {
			return m, nil
		}
		m.CurrentIndex = msg.FileIndex
		m.Files[m.CurrentIndex].Status = StatusProbing
		m.Files[m.CurrentIndex].StartTime = time.Now()

	case FileCompleteMsg:
		slog.Debug("file complete", "index", msg.FileIndex, "error", msg.Error)
		if msg.FileIndex < 0 || msg.FileIndex >= len(m.Files) {
			return m, nil
		}
		m.Files[msg.FileIndex] = completeFile(m.Files[msg.FileIndex], msg)
		if msg.Error != nil {
			m.FailedFiles++
		} else {
			m.CompletedFiles++
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Width == 0 {
		return fmt.Sprintf("Initializing...\nFiles: %d\n", len(m.Files))
	}

	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}

// updateFileProgress updates a FileProgress based on a ProgressMsg
func updateFileProgress(fp FileProgress, msg ProgressMsg) FileProgress {
	fp.Stage = msg.Stage
	fp.Progress = msg.Progress
	fp.Status = statusForStage(msg.Stage)
	fp.ElapsedTime = time.Since(fp.StartTime)
	return fp
}

// completeFile records the outcome of a finished file.
func completeFile(fp FileProgress, msg FileCompleteMsg) FileProgress {
	fp.ElapsedTime = time.Since(fp.StartTime)
	if msg.Error != nil {
		fp.Status = StatusError
		fp.Error = msg.Error
		return fp
	}

	fp.Status = StatusComplete
	fp.Progress = 1
	if res := msg.Result; res != nil {
		fp.OutputPath = res.OutputPath
		fp.QuietSegments, fp.LoudSegments = res.Timeline.Counts()
		if res.Info != nil {
			frameLength := res.Info.FrameRate.FrameLength()
			fp.QuietSeconds = float64(res.Timeline.QuietFrames()) * frameLength
			fp.TotalSeconds = float64(res.Timeline.Duration()) * frameLength
		}
	}
	return fp
}
