package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/logger"
	"github.com/julianstephens/pomolit/internal/notifier"
	"github.com/julianstephens/pomolit/internal/platform"
	"github.com/julianstephens/pomolit/internal/timer"
)

// RunCmd drives the countdown in the foreground until the current session
// completes. An idle timer is started first and a paused one resumed.
type RunCmd struct {
	Category string `short:"c" help:"Category name or ID for a new session. Defaults to the first category."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	guard, err := platform.AcquireSingleInstance(ctx.InstanceKey())
	if err != nil {
		return err
	}
	defer guard.Release()

	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.run(sigCtx, ctx, app)
}

func (c *RunCmd) run(runCtx context.Context, ctx *cli.Context, app *cli.App) error {
	events := app.Engine.Subscribe(64)
	defer app.Engine.Close()

	switch app.Engine.State().Phase {
	case timer.PhaseIdle:
		category, err := selectCategory(ctx, c.Category)
		if err != nil {
			return err
		}
		app.Engine.Start(category.ID)
	case timer.PhasePaused:
		app.Engine.Resume()
	}

	state := app.Engine.State()
	if state.Phase != timer.PhaseRunning {
		return errors.New("failed to start session")
	}
	label := state.Mode.Label()
	if name := ctx.CategoryName(state.SelectedCategoryID); name != "" {
		label += " - " + name
	}

	engineCtx, cancel := context.WithCancel(runCtx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Engine.Run(engineCtx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	fmt.Printf("%s %s", label, timer.FormatRemaining(state.RemainingSeconds))
	for {
		select {
		case <-runCtx.Done():
			fmt.Println()
			fmt.Println("Stopped. The session is saved, continue it with 'pomolit run'.")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch event.Type {
			case timer.EventTick:
				fmt.Printf("\r%s %s", label, timer.FormatRemaining(event.State.RemainingSeconds))
			case timer.EventCompleted:
				fmt.Println()
				fmt.Println(notifier.CompletionMessage(event.State.Mode))
				logger.Debug("run finished", "completed", event.Completed, "next", event.State.Mode)
				return nil
			}
		}
	}
}
