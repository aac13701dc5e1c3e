package ui

import (
	"github.com/linuxmatters/autocut/internal/autocut"
)

// ProgressMsg represents a progress update from the pipeline
type ProgressMsg struct {
	Stage    autocut.Stage
	Progress float64 // 0.0 to 1.0 within the stage
}

// FileStartMsg indicates a new file has started processing
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a file has finished processing
type FileCompleteMsg struct {
	FileIndex int
	Result    *autocut.Result
	Error     error
}

// AllCompleteMsg indicates all files have been processed
type AllCompleteMsg struct{}
