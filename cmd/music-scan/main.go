// Package main is the entry point for the music-scan application.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/music-scan/internal/config"
	"github.com/joe/music-scan/internal/report"
	"github.com/joe/music-scan/internal/scanengine"
	"github.com/joe/music-scan/internal/tui"
	"github.com/joe/music-scan/pkg/errors"
	"github.com/joe/music-scan/pkg/filesystem"
)

// Exit codes.
const (
	exitOK         = 0
	exitFatal      = 1
	exitWalkErrors = 2
	exitCancelled  = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFatal
	}

	interactive := !cfg.Plain && term.IsTerminal(int(os.Stdout.Fd()))

	logger, err := newLogger(cfg, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFatal
	}

	defer func() { _ = logger.Sync() }()

	source, rootPath, closer, err := filesystem.OpenSource(cfg.Root, cfg.ConnectOptions())
	if err != nil {
		printFatal(os.Stderr, err, cfg.Root)
		return exitFatal
	}
	defer closer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []scanengine.Option{
		scanengine.WithLogger(logger),
		scanengine.WithFilter(scanengine.NewGlobFilter(cfg.Include...)),
		scanengine.WithProbe(!cfg.NoProbe),
		scanengine.WithOrder(cfg.Order),
		scanengine.WithReadBatch(cfg.ReadBatch),
	}

	var bridge *tui.EventBridge
	if interactive {
		bridge = tui.NewEventBridge()
		opts = append(opts, scanengine.WithEmitter(bridge))
	}

	engine, err := scanengine.NewEngine(rootPath, source, opts...)
	if err != nil {
		printFatal(os.Stderr, err, rootPath)
		return exitFatal
	}

	var (
		result *scanengine.Result
		runErr error
	)

	if interactive {
		result, runErr = runInteractive(ctx, rootPath, engine, bridge)
	} else {
		result, runErr = engine.Run(ctx)
	}

	if result == nil {
		if runErr != nil && !stderrors.Is(runErr, context.Canceled) {
			printFatal(os.Stderr, runErr, rootPath)
			return exitFatal
		}

		fmt.Fprintln(os.Stderr, "Scan interrupted")

		return exitCancelled
	}

	if err := writeReport(os.Stderr, result, cfg.MaxErrors); err != nil {
		logger.Error("writing report failed", zap.Error(err))
	}

	if err := writeResults(cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFatal
	}

	return exitCode(result, runErr)
}

// runInteractive runs the engine behind the progress view.
func runInteractive(
	ctx context.Context, root string, engine *scanengine.Engine, bridge *tui.EventBridge,
) (*scanengine.Result, error) {
	defer bridge.Close()

	model := tui.NewModel(ctx, root, engine.Run, bridge)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}

	finished, ok := final.(*tui.Model)
	if !ok || finished.Result() == nil {
		return nil, context.Canceled
	}

	return finished.Result(), finished.Err()
}

// writeReport writes the summary and the error lists for people.
func writeReport(w io.Writer, result *scanengine.Result, maxErrors int) error {
	sections := []string{
		report.RenderSummary(result),
		report.RenderErrors(result.WalkErrors, maxErrors),
		report.RenderProbeFailures(result.Files, maxErrors),
	}

	for _, section := range sections {
		if section == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s\n", section); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}

// writeResults writes the per-file results to --output, or stdout.
func writeResults(cfg *config.Config, result *scanengine.Result) error {
	if cfg.Output == "" {
		return report.WriteResults(os.Stdout, result, cfg.Format)
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := report.WriteResults(file, result, cfg.Format); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}

// printFatal prints err with the suggestions for its category.
func printFatal(w io.Writer, err error, path string) {
	enriched := errors.NewEnricher().Enrich(err, path)

	fmt.Fprintf(w, "%s %v\n", report.ErrorStyle().Render(report.ErrorSymbol()+" Error:"), err)

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintf(w, "%s\n", suggestions)
	}
}

// exitCode maps a finished scan onto the process exit code.
func exitCode(result *scanengine.Result, runErr error) int {
	switch {
	case result.Cancelled || stderrors.Is(runErr, context.Canceled):
		return exitCancelled
	case runErr != nil:
		return exitFatal
	case len(result.WalkErrors) > 0:
		return exitWalkErrors
	default:
		return exitOK
	}
}
