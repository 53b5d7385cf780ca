package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sola-app/sola/cmd/sola/internal/syncer"
)

// RunBoard runs the interactive board until the user quits or ctx is
// canceled.
func RunBoard(ctx context.Context, orch *syncer.Orchestrator, out io.Writer) error {
	m := newBoardModel(ctx, orch)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
