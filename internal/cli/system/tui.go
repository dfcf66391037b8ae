package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/platform"
	"github.com/julianstephens/pomolit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	guard, err := platform.AcquireSingleInstance(ctx.InstanceKey())
	if err != nil {
		return err
	}
	defer guard.Release()

	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Deps{
		Engine:   app.Engine,
		Settings: app.Settings,
		Recorder: app.Recorder,
		Store:    ctx.Store,
	})

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Engine.Run(runCtx)
	}()
	defer func() {
		cancel()
		<-done
		app.Engine.Close()
	}()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}
	return nil
}
