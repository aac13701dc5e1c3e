// Package media probes source files and extracts their audio tracks with
// the ffprobe and ffmpeg command-line tools.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCommandFailed is returned when an external tool exits non-zero.
var ErrCommandFailed = errors.New("command failed")

// Runner runs an external command and returns what it wrote to stdout and
// stderr. Implementations must return an error wrapping ErrCommandFailed
// when the command does not exit cleanly.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args and waits for it to finish.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%w: %s: %v: %s", ErrCommandFailed, name, err, lastLine(stderr.Bytes()))
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// lastLine returns the last non-empty line of out, which is where ffmpeg
// and ffprobe put the reason they gave up.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
