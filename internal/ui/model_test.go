package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/autocut/internal/autocut"
	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/media"
)

func testResult() *autocut.Result {
	return &autocut.Result{
		Input:      "/shows/talk.mkv",
		OutputPath: "/shows/talk.fcpxml",
		Info:       &media.Info{FrameRate: media.FrameRate{Num: 25, Den: 1}, Duration: 4.01},
		Timeline: cuts.Timeline{
			{Start: 0, End: 25, Quiet: false},
			{Start: 25, End: 50, Quiet: true},
			{Start: 50, End: 100, Quiet: false},
		},
	}
}

// apply feeds msgs through Update in order.
func apply(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestStatusForStage(t *testing.T) {
	tests := []struct {
		stage autocut.Stage
		want  FileStatus
	}{
		{autocut.StageProbe, StatusProbing},
		{autocut.StageDetect, StatusDetecting},
		{autocut.StageBuild, StatusBuilding},
		{autocut.StageExtract, StatusExtracting},
		{autocut.StageWrite, StatusWriting},
	}
	for _, tt := range tests {
		got := statusForStage(tt.stage)
		if got != tt.want {
			t.Errorf("statusForStage(%v) = %v, want %v", tt.stage, got, tt.want)
		}
		if !got.Active() {
			t.Errorf("%v should be active", got)
		}
	}
	for _, s := range []FileStatus{StatusQueued, StatusComplete, StatusError} {
		if s.Active() {
			t.Errorf("%v should not be active", s)
		}
	}
}

func TestModelLifecycle(t *testing.T) {
	m := NewModel([]string{"/shows/talk.mkv", "/shows/broken.mkv"})
	if m.CurrentIndex != -1 || m.TotalFiles != 2 {
		t.Fatalf("NewModel() = %+v", m)
	}

	m = apply(m,
		tea.WindowSizeMsg{Width: 80, Height: 24},
		FileStartMsg{FileIndex: 0, FileName: "/shows/talk.mkv"},
		ProgressMsg{Stage: autocut.StageDetect, Progress: 0},
	)
	if got := m.Files[0].Status; got != StatusDetecting {
		t.Errorf("status after detect progress = %v, want StatusDetecting", got)
	}
	if view := m.View(); !strings.Contains(view, "Stage 2/5: Detecting silence") || !strings.Contains(view, "talk.fcpxml") {
		t.Errorf("processing view missing stage line:\n%s", view)
	}

	m = apply(m,
		FileCompleteMsg{FileIndex: 0, Result: testResult()},
		FileStartMsg{FileIndex: 1, FileName: "/shows/broken.mkv"},
		FileCompleteMsg{FileIndex: 1, Error: errors.New("probe failed")},
	)
	if m.CompletedFiles != 1 || m.FailedFiles != 1 {
		t.Errorf("completed/failed = %d/%d, want 1/1", m.CompletedFiles, m.FailedFiles)
	}

	done := m.Files[0]
	if done.Status != StatusComplete || done.QuietSegments != 1 || done.LoudSegments != 2 {
		t.Errorf("completed file = %+v", done)
	}
	if done.QuietSeconds != 1 || done.TotalSeconds != 4 {
		t.Errorf("quiet/total seconds = %v/%v, want 1/4", done.QuietSeconds, done.TotalSeconds)
	}
	if m.Files[1].Status != StatusError {
		t.Errorf("failed file status = %v, want StatusError", m.Files[1].Status)
	}

	next, cmd := m.Update(AllCompleteMsg{})
	m = next.(Model)
	if !m.Done || cmd == nil {
		t.Fatal("AllCompleteMsg should finish and quit")
	}
	view := m.View()
	for _, want := range []string{"Cutting Complete", "1 quiet | 2 loud", "25%", "1 of 2 project(s) written, 1 failed", "probe failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary missing %q:\n%s", want, view)
		}
	}
}

func TestModelIgnoresBadIndex(t *testing.T) {
	m := apply(NewModel([]string{"a.mkv"}), FileStartMsg{FileIndex: 3}, FileCompleteMsg{FileIndex: -1})
	if m.CurrentIndex != -1 || m.CompletedFiles != 0 || m.FailedFiles != 0 {
		t.Errorf("model changed by out-of-range messages: %+v", m)
	}
}

func TestInitializingView(t *testing.T) {
	if got := NewModel([]string{"a.mkv"}).View(); !strings.HasPrefix(got, "Initializing...") {
		t.Errorf("View() before window size = %q", got)
	}
}

func TestStageFraction(t *testing.T) {
	tests := []struct {
		stage    autocut.Stage
		progress float64
		want     float64
	}{
		{autocut.StageProbe, 0, 0},
		{autocut.StageBuild, 0.5, 0.5},
		{autocut.StageWrite, 1, 1},
	}
	for _, tt := range tests {
		got := stageFraction(FileProgress{Stage: tt.stage, Progress: tt.progress})
		if got != tt.want {
			t.Errorf("stageFraction(%v, %v) = %v, want %v", tt.stage, tt.progress, got, tt.want)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := renderProgressBar(0.5, 10)
	if got != "█████░░░░░ 50%" {
		t.Errorf("renderProgressBar(0.5, 10) = %q", got)
	}
}

func TestPlainProgress(t *testing.T) {
	var b strings.Builder
	progress := PlainProgress(&b, "/shows/talk.mkv")
	progress(autocut.StageProbe, 0)
	progress(autocut.StageProbe, 1)
	progress(autocut.StageDetect, 0)

	out := b.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "talk.mkv: Probing") {
		t.Errorf("PlainProgress output = %q, want one finished-stage line", out)
	}
}

func TestRenderResultLine(t *testing.T) {
	line := RenderResultLine("/shows/talk.mkv", testResult(), nil)
	if !strings.Contains(line, "talk.mkv → talk.fcpxml") {
		t.Errorf("RenderResultLine() = %q", line)
	}
	line = RenderResultLine("/shows/talk.mkv", nil, errors.New("no such file"))
	if !strings.Contains(line, "Error: no such file") {
		t.Errorf("RenderResultLine() on error = %q", line)
	}
}
