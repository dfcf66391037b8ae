package stats

import (
	"fmt"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/settings"
	"github.com/julianstephens/pomolit/internal/tracking"
)

type StatsCmd struct {
	Days int `help:"Number of days to show, today included." default:"7"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	live, err := settings.Load(ctx.Store)
	if err != nil {
		return err
	}
	recorder := tracking.NewRecorder(ctx.Store, live)

	today, err := recorder.Today()
	if err != nil {
		return fmt.Errorf("failed to load today's summary: %w", err)
	}
	fmt.Printf("Today: %d/%d pomodoros, %d min focused\n", today.TotalPomodoros, live.Settings().DailyGoal, today.TotalMinutes)

	history, err := recorder.History(c.Days)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	fmt.Printf("\nLast %d days:\n", c.Days)
	for _, h := range history {
		name := h.Category.Name
		if h.Category.DeletedAt != nil {
			name += " (deleted)"
		}
		fmt.Printf("  %-24s %s %4d min %3d pomodoros\n", name, tracking.Sparkline(h.Days), h.TotalMinutes, h.TotalPomodoros)
	}
	return nil
}
