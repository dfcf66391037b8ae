package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pomolit.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE focus_log (id INTEGER PRIMARY KEY, day TEXT, minutes INTEGER)`,
		`INSERT INTO focus_log (day, minutes) VALUES ('2026-10-13', 25), ('2026-10-14', 50)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare test database: %v", err)
		}
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM focus_log").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("snapshot written to %s, expected directory %s", path, mgr.Dir())
	}
	if got := countRows(t, path); got != 2 {
		t.Errorf("expected 2 rows in snapshot, got %d", got)
	}
}

func TestSnapshot_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Snapshot(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("expected ErrNoDatabase, got %v", err)
	}
}

func TestSnapshot_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Snapshot()
	if err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}
	second, err := mgr.Snapshot()
	if err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct snapshot paths, both were %s", first)
	}
	if want := filepath.Join(mgr.Dir(), "pomolit-20261014-093000-1.db"); second != want {
		t.Errorf("expected %s, got %s", want, second)
	}

	snapshots, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Errorf("expected 2 snapshots, got %d", len(snapshots))
	}
}

func TestList_NewestFirstAndIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 10, 14, 8, 0, 0, 0, time.Local))

	for i := 0; i < 3; i++ {
		if _, err := mgr.Snapshot(); err != nil {
			t.Fatalf("snapshot %d failed: %v", i, err)
		}
	}
	for _, name := range []string{"notes.txt", "pomolit-yesterday.db", "other-20261014-080000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	snapshots, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}
	for i := 1; i < len(snapshots); i++ {
		if !snapshots[i-1].TakenAt.After(snapshots[i].TakenAt) {
			t.Errorf("snapshots not sorted newest first at %d: %v then %v", i, snapshots[i-1].TakenAt, snapshots[i].TakenAt)
		}
	}
}

func TestList_NoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "pomolit.db"))
	snapshots, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("expected no snapshots, got %d", len(snapshots))
	}
}

func TestSnapshot_Rotates(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 10, 1, 12, 0, 0, 0, time.Local))

	var oldest string
	for i := 0; i < MaxSnapshots+3; i++ {
		path, err := mgr.Snapshot()
		if err != nil {
			t.Fatalf("snapshot %d failed: %v", i, err)
		}
		if i == 0 {
			oldest = path
		}
	}

	snapshots, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != MaxSnapshots {
		t.Errorf("expected %d snapshots after rotation, got %d", MaxSnapshots, len(snapshots))
	}
	if fileExists(oldest) {
		t.Errorf("oldest snapshot %s should have been rotated out", oldest)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local))

	snapshot, err := mgr.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("DELETE FROM focus_log"); err != nil {
		t.Fatalf("failed to clear rows: %v", err)
	}
	db.Close()

	previous, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if previous == "" {
		t.Fatal("expected the pre-restore database to be snapshotted")
	}
	if got := countRows(t, previous); got != 0 {
		t.Errorf("pre-restore snapshot should hold the cleared table, got %d rows", got)
	}
	if fileExists(dbPath + ".restore.tmp") {
		t.Error("temporary restore file was left behind")
	}
}

func TestRestore_RejectsInvalidSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "pomolit-20261014-100000.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write bogus snapshot: %v", err)
	}

	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected restore of an invalid file to fail")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected restore of a missing file to fail")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database should be untouched, got %d rows", got)
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager(filepath.Join("/", "data", "pomolit.db"))
	tests := []struct {
		ref  string
		want string
	}{
		{"pomolit-20261014-100000.db", filepath.Join(mgr.Dir(), "pomolit-20261014-100000.db")},
		{"/tmp/snap.db", "/tmp/snap.db"},
		{filepath.Join("rel", "snap.db"), filepath.Join("rel", "snap.db")},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("ref=%s", tt.ref), func(t *testing.T) {
			if got := mgr.Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
