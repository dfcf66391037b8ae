package system

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/pomolit/internal/backup"
	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/storage/sqlite"
)

var errBackupUnsupported = errors.New("backups are only available for SQLite storage")

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, errBackupUnsupported
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Snapshot()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Snapshot created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Printf("No snapshots in %s\n", mgr.Dir())
		return nil
	}
	for _, s := range snapshots {
		fmt.Printf("%s  %s  %d KB\n", s.TakenAt.Format("2006-01-02 15:04:05"), filepath.Base(s.Path), (s.Size+1023)/1024)
	}
	return nil
}

type BackupRestoreCmd struct {
	Snapshot string `arg:"" help:"Snapshot file name (as shown by 'backup list') or path."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	// The database file is replaced under the store
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	previous, err := mgr.Restore(mgr.Resolve(c.Snapshot))
	if err != nil {
		return err
	}
	if previous != "" {
		fmt.Printf("Previous database saved as: %s\n", filepath.Base(previous))
	}
	fmt.Printf("✓ Restored database from: %s\n", c.Snapshot)
	return nil
}
