package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/desertthunder/cvx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive workflow. Any file paths given as arguments
// are queued for upload before the search view opens.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.parser == nil {
		return fmt.Errorf("%w: parser service not initialized", shared.ErrServiceUnavailable)
	}
	if r.syncer == nil {
		return fmt.Errorf("%w: sync engine not initialized", shared.ErrServiceUnavailable)
	}

	files := cmd.StringArgs("files")

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cvx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.parser, r.uploader, r.syncer, files)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
