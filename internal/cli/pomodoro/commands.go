package pomodoro

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/timer"
)

type StartCmd struct {
	Category string `short:"c" help:"Category name or ID to credit the session to. Defaults to the first category."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}
	if phase := app.Engine.State().Phase; phase != timer.PhaseIdle {
		return fmt.Errorf("a session is already %s, use 'pomolit reset' to discard it", phase)
	}

	category, err := selectCategory(ctx, c.Category)
	if err != nil {
		return err
	}

	app.Engine.Start(category.ID)
	state := app.Engine.State()
	if state.Phase != timer.PhaseRunning {
		return errors.New("failed to start session")
	}

	fmt.Printf("Started %s for %s\n", state.Mode.Label(), category.Name)
	ctx.PrintState(os.Stdout, state)
	return nil
}

type PauseCmd struct{}

func (c *PauseCmd) Run(ctx *cli.Context) error {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}
	if app.Engine.State().Phase != timer.PhaseRunning {
		return errors.New("no running session to pause")
	}

	app.Engine.Pause()
	ctx.PrintState(os.Stdout, app.Engine.State())
	return nil
}

type ResumeCmd struct{}

func (c *ResumeCmd) Run(ctx *cli.Context) error {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}
	if app.Engine.State().Phase != timer.PhasePaused {
		return errors.New("no paused session to resume")
	}

	app.Engine.Resume()
	ctx.PrintState(os.Stdout, app.Engine.State())
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}

	app.Engine.Reset()
	fmt.Println("Timer reset.")
	ctx.PrintState(os.Stdout, app.Engine.State())
	return nil
}

type ModeCmd struct {
	Mode string `arg:"" enum:"focus,short,long" help:"Mode to switch to (focus, short, long)."`
}

func (c *ModeCmd) Run(ctx *cli.Context) error {
	mode, err := cli.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}
	if app.Engine.State().Phase != timer.PhaseIdle {
		return errors.New("cannot switch mode while a session is in progress")
	}

	app.Engine.SwitchMode(mode)
	ctx.PrintState(os.Stdout, app.Engine.State())
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}

	ctx.PrintState(os.Stdout, app.Engine.State())

	today, err := app.Recorder.Today()
	if err != nil {
		return fmt.Errorf("failed to load today's summary: %w", err)
	}
	goal := app.Settings.Settings().DailyGoal
	fmt.Printf("Today: %d/%d pomodoros, %d min focused\n", today.TotalPomodoros, goal, today.TotalMinutes)
	return nil
}

// selectCategory resolves ref, falling back to the first active category.
func selectCategory(ctx *cli.Context, ref string) (models.Category, error) {
	if ref != "" {
		return ctx.ResolveCategory(ref)
	}
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return models.Category{}, errors.New("no categories, add one with 'pomolit category add'")
	}
	return categories[0], nil
}
