package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/logger"
)

const (
	// MaxSnapshots is how many snapshots are kept after rotation
	MaxSnapshots = 10
	DirName      = "backups"
	filePrefix   = constants.AppName + "-"
	fileSuffix   = ".db"
	stampFormat  = "20060102-150405"
)

var ErrNoDatabase = errors.New("database does not exist")

// Snapshot is one backup file of the focus log database.
type Snapshot struct {
	Path    string
	TakenAt time.Time
	Size    int64
}

// Manager snapshots and restores a SQLite database file. Snapshots live in
// a backups directory next to the database.
type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Snapshot writes a consistent copy of the database and rotates old
// snapshots beyond MaxSnapshots.
func (m *Manager) Snapshot() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	removed, err := m.rotate()
	if err != nil {
		logger.Warn("failed to rotate snapshots", "dir", m.dir, "error", err)
	}
	if removed > 0 {
		logger.Debug("rotated snapshots", "removed", removed)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := checkDatabase(db); err != nil {
		return "", fmt.Errorf("database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}
	logger.Info("database snapshot written", "path", path)
	return path, nil
}

// nextPath picks a timestamped name, adding a counter when two snapshots
// land in the same second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampFormat)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for i := 1; fileExists(path); i++ {
		if i > 99 {
			return "", errors.New("failed to generate unique snapshot filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, i, fileSuffix))
	}
	return path, nil
}

// List returns the snapshots newest first. Files that do not carry a
// snapshot name are ignored.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		takenAt, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Path:    filepath.Join(m.dir, entry.Name()),
			TakenAt: takenAt,
			Size:    info.Size(),
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		if snapshots[i].TakenAt.Equal(snapshots[j].TakenAt) {
			return snapshots[i].Path > snapshots[j].Path
		}
		return snapshots[i].TakenAt.After(snapshots[j].TakenAt)
	})
	return snapshots, nil
}

func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(stamp) > len(stampFormat) && stamp[len(stampFormat)] == '-' {
		stamp = stamp[:len(stampFormat)]
	}
	t, err := time.ParseInLocation(stampFormat, stamp, time.Local)
	return t, err == nil
}

func (m *Manager) rotate() (int, error) {
	snapshots, err := m.List()
	if err != nil || len(snapshots) <= MaxSnapshots {
		return 0, err
	}
	removed := 0
	for _, s := range snapshots[MaxSnapshots:] {
		if err := os.Remove(s.Path); err != nil {
			return removed, fmt.Errorf("failed to remove old snapshot %s: %w", s.Path, err)
		}
		removed++
	}
	return removed, nil
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first, without rotation, so a restore can be
// undone. The database must not be open.
func (m *Manager) Restore(path string) (string, error) {
	if !fileExists(path) {
		return "", fmt.Errorf("snapshot does not exist: %s", path)
	}
	if err := verify(path); err != nil {
		return "", fmt.Errorf("snapshot is corrupted or invalid: %w", err)
	}

	var previous string
	if fileExists(m.dbPath) {
		var err error
		if previous, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("failed to snapshot current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("database restored", "from", path)
	return previous, nil
}

// Resolve accepts a snapshot path or a bare file name inside the backup
// directory.
func (m *Manager) Resolve(ref string) string {
	if filepath.IsAbs(ref) || strings.ContainsRune(ref, os.PathSeparator) {
		return ref
	}
	return filepath.Join(m.dir, ref)
}

func verify(path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return checkDatabase(db)
}

func checkDatabase(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
