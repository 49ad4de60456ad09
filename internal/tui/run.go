package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/scanner"
	tea "github.com/charmbracelet/bubbletea"
)

// App runs the scanner UI for one session.
type App struct {
	program *tea.Program
	session *scanner.Session
}

// New creates the UI. The session must not be used by anything else
// while Run is in progress.
func New(ctx context.Context, session *scanner.Session, opts ...Option) (*App, error) {
	if session == nil {
		return nil, fmt.Errorf("scan session is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newModel(ctx, session, cfg)
	return &App{
		session: session,
		program: tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)),
	}, nil
}

// Run blocks until the user quits or ctx is canceled. The camera is
// released on the way out.
func (a *App) Run() error {
	_, err := a.program.Run()

	if a.session.Running() {
		if stopErr := a.session.Stop(); stopErr != nil {
			slog.Warn("Failed to stop camera", "error", stopErr)
		}
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Reload hands new settings to the running UI. It is safe to call from
// any goroutine.
func (a *App) Reload(settings config.Settings) {
	a.program.Send(settingsReloadedMsg{settings: settings})
}
