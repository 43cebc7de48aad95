package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/chat"
	"github.com/five82/vogue/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Store     *state.Store
	Responder chat.Responder // nil uses chat.Local
	Logger    *zap.Logger
	Theme     string
}

// Run starts the bubbletea program and blocks until ctx is cancelled or the
// user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}

	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the program reads the message, and subscribers run
	// under the store's dispatch lock.
	unsubscribe := opts.Store.Subscribe(func(snap state.Snapshot) {
		go p.Send(snapshotMsg(snap))
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
