package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunedl/internal/formatter"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/desertthunder/tunedl/internal/tasks"
	"github.com/desertthunder/tunedl/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive playlist picker and runs the pipeline on the
// selected playlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.catalogFor(ctx, "spotify"); err != nil {
		return err
	}

	lister, ok := r.spotify.(ui.PlaylistLister)
	if !ok {
		return fmt.Errorf("%w: interactive picker requires the Spotify catalog", shared.ErrInvalidArgument)
	}

	opts := tasks.RunOpts{
		DestDir:     r.config.Downloads.Folder,
		ResolveOnly: cmd.Bool("resolve-only"),
		NumWorkers:  r.config.Downloads.MaxConcurrent,
	}

	model := ui.NewModel(ctx, lister, r.engine, opts)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	if err := model.Err(); err != nil {
		return err
	}

	report := model.Report()
	if report == nil {
		return nil
	}

	r.writePlainHeader("Run Summary")
	r.writePlain("%s", formatter.ReportToText(report))

	reportPath, err := formatter.WriteJSONReport(report, "")
	if err != nil {
		return err
	}
	r.writePlainln("✓ Report written to %s", reportPath)

	return nil
}
