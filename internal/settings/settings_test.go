package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/timer"
	"github.com/julianstephens/pomolit/internal/validation"
)

type memoryStore struct {
	settings models.Settings
	saves    int
	failSave error
}

func (m *memoryStore) GetSettings() (models.Settings, error) { return m.settings, nil }

func (m *memoryStore) SaveSettings(s models.Settings) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	m.settings = s
	return nil
}

func TestLiveUpdate(t *testing.T) {
	store := &memoryStore{settings: models.DefaultSettings()}
	live, err := Load(store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var notified []models.Settings
	live.OnChange(func(s models.Settings) { notified = append(notified, s) })

	if err := live.Update(func(s *models.Settings) { s.FocusMinutes = 45 }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := live.Durations(); got != (timer.Durations{Focus: 45, ShortBreak: 5, LongBreak: 15}) {
		t.Errorf("Durations() = %+v", got)
	}
	if store.settings.FocusMinutes != 45 || len(notified) != 1 {
		t.Errorf("store focus = %d, notifications = %d", store.settings.FocusMinutes, len(notified))
	}
}

func TestLiveUpdateRejectsInvalid(t *testing.T) {
	store := &memoryStore{settings: models.DefaultSettings()}
	live, _ := Load(store)
	called := false
	live.OnChange(func(models.Settings) { called = true })

	err := live.Update(func(s *models.Settings) { s.ShortBreakMinutes = 0 })
	if !errors.Is(err, validation.ErrInvalidDuration) {
		t.Fatalf("Update() error = %v, want ErrInvalidDuration", err)
	}
	if live.Settings().ShortBreakMinutes != 5 || store.saves != 0 || called {
		t.Error("invalid update leaked into state")
	}

	store.failSave = errors.New("disk full")
	if err := live.Update(func(s *models.Settings) { s.FocusMinutes = 30 }); err == nil {
		t.Error("Update() should fail when the save fails")
	}
	if live.Settings().FocusMinutes != 25 {
		t.Error("failed save changed in-memory settings")
	}
}

func TestLoadRejectsInvalidStoredSettings(t *testing.T) {
	bad := models.DefaultSettings()
	bad.LongBreakMinutes = 500
	if _, err := Load(&memoryStore{settings: bad}); err == nil {
		t.Error("Load() accepted an out-of-range duration")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "settings.yaml")
	want := models.Settings{FocusMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30, BellEnabled: true, DailyGoal: 4}

	if err := ExportFile(path, want); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	got, err := ImportFile(path, models.DefaultSettings())
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if got != want {
		t.Errorf("ImportFile() = %+v, want %+v", got, want)
	}
}

func TestImportFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("focus_minutes: 40\nbell_enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ImportFile(path, models.DefaultSettings())
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	want := models.DefaultSettings()
	want.FocusMinutes = 40
	want.BellEnabled = false
	if got != want {
		t.Errorf("ImportFile() = %+v, want %+v", got, want)
	}
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ImportFile(filepath.Join(dir, "missing.yaml"), models.DefaultSettings()); err == nil {
		t.Error("ImportFile() on missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("focus_minutes: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportFile(bad, models.DefaultSettings()); err == nil {
		t.Error("ImportFile() on malformed yaml should fail")
	}
}
