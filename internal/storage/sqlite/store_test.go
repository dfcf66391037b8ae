package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/session"
	"github.com/julianstephens/pomolit/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "pomolit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitSeedsDefaults(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults", settings)
	}

	categories, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories failed: %v", err)
	}
	if len(categories) != len(models.DefaultCategoryNames) {
		t.Fatalf("expected %d seeded categories, got %d", len(models.DefaultCategoryNames), len(categories))
	}
	if categories[0].ColorKey != "emerald" {
		t.Errorf("first category color = %q, want emerald", categories[0].ColorKey)
	}

	for _, table := range []string{"settings", "categories", "focus_entries", "kv"} {
		ok, err := store.tableExists(table)
		if err != nil || !ok {
			t.Errorf("table %s missing (err=%v)", table, err)
		}
	}

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 2 {
		t.Errorf("SchemaVersion() = %d, %d", current, latest)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomolit.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	custom := models.DefaultSettings()
	custom.FocusMinutes = 50
	if err := store.SaveSettings(custom); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer reopened.Close()

	settings, err := reopened.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.FocusMinutes != 50 {
		t.Errorf("FocusMinutes = %d, want 50 preserved", settings.FocusMinutes)
	}
	categories, _ := reopened.GetAllCategories()
	if len(categories) != len(models.DefaultCategoryNames) {
		t.Errorf("categories reseeded: got %d", len(categories))
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing database should fail")
	}
}

func TestCategoryLifecycle(t *testing.T) {
	store := setupTestStore(t)

	cat := models.NewCategory("Thesis", "teal")
	if err := store.AddCategory(cat); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}

	if err := store.AddCategory(models.NewCategory("thesis", "red")); !errors.Is(err, storage.ErrDuplicateName) {
		t.Errorf("duplicate AddCategory error = %v, want ErrDuplicateName", err)
	}

	got, err := store.GetCategoryByName("THESIS")
	if err != nil {
		t.Fatalf("GetCategoryByName failed: %v", err)
	}
	if got.ID != cat.ID || !got.CreatedAt.Equal(cat.CreatedAt) {
		t.Errorf("GetCategoryByName() = %+v, want %+v", got, cat)
	}

	got.Name = "Dissertation"
	got.TargetMinutes = 120
	if err := store.UpdateCategory(got); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	got, _ = store.GetCategory(cat.ID)
	if got.Name != "Dissertation" || got.TargetMinutes != 120 {
		t.Errorf("after update: %+v", got)
	}

	if err := store.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := store.DeleteCategory(cat.ID); err == nil {
		t.Error("deleting twice should fail")
	}
	if _, err := store.GetCategory(cat.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCategory after delete error = %v, want ErrNotFound", err)
	}

	all, _ := store.GetAllCategoriesIncludingDeleted()
	var found bool
	for _, c := range all {
		if c.ID == cat.ID {
			found = c.DeletedAt != nil
		}
	}
	if !found {
		t.Error("deleted category missing from GetAllCategoriesIncludingDeleted")
	}

	if err := store.RestoreCategory(cat.ID); err != nil {
		t.Fatalf("RestoreCategory failed: %v", err)
	}
	if _, err := store.GetCategory(cat.ID); err != nil {
		t.Errorf("GetCategory after restore failed: %v", err)
	}

	if err := store.UpdateCategory(models.Category{ID: "nope", Name: "x", ColorKey: "red"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateCategory(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFocusAggregates(t *testing.T) {
	store := setupTestStore(t)
	categories, _ := store.GetAllCategories()
	work, study := categories[1].ID, categories[0].ID

	day1 := time.Date(2026, 4, 1, 10, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)
	entries := []models.FocusEntry{
		models.NewFocusEntry(work, 25, day1),
		models.NewFocusEntry(work, 25, day1.Add(time.Hour)),
		models.NewFocusEntry(study, 50, day1.Add(2*time.Hour)),
		models.NewFocusEntry(work, 30, day2),
	}
	for _, e := range entries {
		if err := store.AddFocusEntry(e); err != nil {
			t.Fatalf("AddFocusEntry failed: %v", err)
		}
	}

	days, err := store.GetCategoryDays(work, "2026-04-01", "2026-04-07")
	if err != nil {
		t.Fatalf("GetCategoryDays failed: %v", err)
	}
	want := []models.DayData{
		{Date: "2026-04-01", Minutes: 50, Pomodoros: 2},
		{Date: "2026-04-02", Minutes: 30, Pomodoros: 1},
	}
	if len(days) != len(want) {
		t.Fatalf("GetCategoryDays() = %+v, want %+v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d = %+v, want %+v", i, days[i], want[i])
		}
	}

	summary, err := store.GetDaySummary("2026-04-01")
	if err != nil {
		t.Fatalf("GetDaySummary failed: %v", err)
	}
	if summary.TotalPomodoros != 3 || summary.TotalMinutes != 100 {
		t.Errorf("GetDaySummary() = %+v", summary)
	}

	empty, err := store.GetDaySummary("2030-01-01")
	if err != nil || empty.TotalPomodoros != 0 || empty.TotalMinutes != 0 {
		t.Errorf("empty GetDaySummary() = %+v, %v", empty, err)
	}

	listed, err := store.GetFocusEntries("2026-04-02", "2026-04-02")
	if err != nil || len(listed) != 1 || listed[0].Minutes != 30 {
		t.Errorf("GetFocusEntries() = %+v, %v", listed, err)
	}
}

func TestKVBacksSessionStore(t *testing.T) {
	store := setupTestStore(t)
	sessions := session.NewStore(session.NewKVBackend(store, "timerSession"))

	if rec := sessions.Load(); rec != nil {
		t.Fatalf("Load() = %+v, want nil", rec)
	}

	sessions.Save(session.Record{
		RemainingSeconds: 90,
		Phase:            session.PhasePaused,
		Mode:             session.ModeShortBreak,
	})
	sessions.Save(session.Record{
		RemainingSeconds: 80,
		Phase:            session.PhasePaused,
		Mode:             session.ModeShortBreak,
	})

	rec := sessions.Load()
	if rec == nil || rec.RemainingSeconds != 80 {
		t.Fatalf("Load() = %+v, want remaining 80", rec)
	}

	sessions.Clear()
	if _, ok, err := store.LookupValue("timerSession"); ok || err != nil {
		t.Errorf("LookupValue after Clear = ok %v, err %v", ok, err)
	}

	if err := store.SetValue("timerSession", "not json"); err != nil {
		t.Fatal(err)
	}
	if rec := sessions.Load(); rec != nil {
		t.Errorf("corrupt Load() = %+v, want nil", rec)
	}
	if _, ok, _ := store.LookupValue("timerSession"); ok {
		t.Error("corrupt record was not cleared")
	}
}
