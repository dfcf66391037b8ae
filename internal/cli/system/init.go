package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pomolit/internal/backup"
	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database and session before initialization. A snapshot of a SQLite database is kept."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Keep the focus log recoverable with 'pomolit backup restore'
			snapshot, err := backup.NewManager(dbPath).Snapshot()
			if err != nil {
				return fmt.Errorf("failed to snapshot existing database: %w", err)
			}
			fmt.Printf("Saved snapshot of existing database: %s\n", snapshot)

			// Close first so the file is not held open while it is removed
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}

		if ctx.ConfigDir != "" {
			sessionPath := filepath.Join(ctx.ConfigDir, constants.SessionFileName)
			if err := os.Remove(sessionPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete session file: %w", err)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized pomolit storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
