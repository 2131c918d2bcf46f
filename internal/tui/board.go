package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/config"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
)

// RunBoard runs the interactive HUD until the user quits.
func RunBoard(ctx context.Context, svc *engine.Service, cfg *config.Config, out io.Writer) error {
	m := newHUDModel(ctx, svc, cfg)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
