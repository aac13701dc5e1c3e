package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugLogFile is the debug log written to the working directory.
const DebugLogFile = "autocut-debug.log"

// Setup opens path for writing and installs a text slog handler at level as
// the default logger. The returned function closes the file. An empty path
// discards all records.
func Setup(path string, level slog.Level) (*slog.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closer := func() error { return nil }

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create debug log: %w", err)
		}
		w, closer = f, f.Close
	}

	logger := NewLogger(w, level)
	slog.SetDefault(logger)
	return logger, closer, nil
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
