package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/autocut/internal/autocut"
	"github.com/linuxmatters/autocut/internal/cli"
	"github.com/linuxmatters/autocut/internal/config"
	"github.com/linuxmatters/autocut/internal/logging"
	"github.com/linuxmatters/autocut/internal/ui"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface. Pointer flags are nil when not
// given so they only override the config file when set.
type CLI struct {
	Version    bool     `short:"v" help:"Show version information"`
	Config     string   `short:"c" type:"existingfile" help:"Path to YAML config file (optional)"`
	Logs       bool     `help:"Save a detailed edit report next to each input"`
	MinLength  *float64 `short:"l" name:"min-length" placeholder:"SECONDS" help:"Shortest silence to cut, in seconds (default 1.75)"`
	Margin     *int     `short:"m" placeholder:"FRAMES" help:"Frames of silence kept either side of a cut (default 4)"`
	Threshold  *float64 `short:"t" placeholder:"DB" help:"Noise floor in dB; anything quieter is silence (default -50)"`
	AudioFiles []string `short:"a" name:"audio-file" type:"existingfile" placeholder:"FILE" help:"Separately recorded audio track; repeat for each speaker"`
	Workers    *int     `placeholder:"N" help:"Concurrent ffmpeg processes (default one per CPU)"`
	NoTUI      bool     `name:"no-tui" help:"Print plain progress lines instead of the interactive display"`
	Files      []string `arg:"" name:"files" help:"Video or audio files to cut" type:"existingfile" optional:""`
}

func main() {
	os.Exit(run())
}

func run() int {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("autocut"),
		kong.Description("Turn the silences in a recording into a ready-to-edit FCPXML timeline"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(os.Stdout, version)
		return 0
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		_ = kctx.PrintUsage(false)
		return 1
	}
	if len(cliArgs.AudioFiles) > 0 && len(cliArgs.Files) > 1 {
		cli.PrintError("--audio-file can only be used with a single input file")
		return 1
	}

	cfg, err := loadConfig(cliArgs)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}

	_, closeLog, err := logging.Setup(logging.DebugLogFile, cfg.LogLevel.Level())
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}
	defer closeLog()

	slog.Info("autocut starting",
		"version", version,
		"files", len(cliArgs.Files),
		"min_length", cfg.MinLength,
		"margin", cfg.Margin,
		"threshold", cfg.Threshold,
		"workers", cfg.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := autocut.OptionsFromConfig(cfg, cliArgs.AudioFiles)

	if cliArgs.NoTUI {
		cli.PrintSettings(os.Stdout, cfg, cliArgs.AudioFiles)
		return runPlain(ctx, cliArgs, opts)
	}
	return runTUI(ctx, cliArgs, opts)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cliArgs *CLI) (*config.Config, error) {
	cfg := config.Default()
	if cliArgs.Config != "" {
		loaded, err := config.Load(cliArgs.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	applyFlags(cfg, cliArgs)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// applyFlags overlays the flags that were given on cfg.
func applyFlags(cfg *config.Config, cliArgs *CLI) {
	if cliArgs.MinLength != nil {
		cfg.MinLength = *cliArgs.MinLength
	}
	if cliArgs.Margin != nil {
		cfg.Margin = *cliArgs.Margin
	}
	if cliArgs.Threshold != nil {
		cfg.Threshold = *cliArgs.Threshold
	}
	if cliArgs.Workers != nil {
		cfg.Workers = *cliArgs.Workers
	}
}

// processFile runs one edit and, with --logs, writes its report.
func processFile(ctx context.Context, path string, opts autocut.Options, logs bool, progress autocut.ProgressFunc) (*autocut.Result, error) {
	start := time.Now()
	result, err := autocut.Process(ctx, path, opts, progress)
	if err != nil {
		slog.Error("edit failed", "input", path, "err", err)
		return nil, err
	}

	if logs {
		reportData := logging.ReportData{
			Result:    result,
			Options:   opts,
			StartTime: start,
			EndTime:   time.Now(),
		}
		if err := logging.GenerateReport(reportData); err != nil {
			slog.Warn("failed to generate report", "input", path, "err", err)
		}
	}
	return result, nil
}

func runPlain(ctx context.Context, cliArgs *CLI, opts autocut.Options) int {
	failed := 0
	for _, path := range cliArgs.Files {
		result, err := processFile(ctx, path, opts, cliArgs.Logs, ui.PlainProgress(os.Stdout, path))
		fmt.Println(ui.RenderResultLine(path, result, err))
		if err != nil {
			failed++
			if errors.Is(err, context.Canceled) {
				break
			}
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, cliArgs *CLI, opts autocut.Options) int {
	model := ui.NewModel(cliArgs.Files)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		for i, path := range cliArgs.Files {
			p.Send(ui.FileStartMsg{FileIndex: i, FileName: path})

			progress := func(stage autocut.Stage, progress float64) {
				p.Send(ui.ProgressMsg{Stage: stage, Progress: progress})
			}
			result, err := processFile(ctx, path, opts, cliArgs.Logs, progress)
			p.Send(ui.FileCompleteMsg{FileIndex: i, Result: result, Error: err})
		}
		p.Send(ui.AllCompleteMsg{})
	}()

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		return 1
	}

	m, ok := final.(ui.Model)
	if !ok || !m.Done {
		// Quit before every file finished.
		return 1
	}
	// The alt screen is gone once the program exits; leave the summary behind.
	fmt.Print(m.View())
	if m.FailedFiles > 0 {
		return 1
	}
	return 0
}
