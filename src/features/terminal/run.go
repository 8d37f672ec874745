package terminal

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, services Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
