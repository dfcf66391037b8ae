package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/logger"
	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/notifier"
	"github.com/julianstephens/pomolit/internal/session"
	"github.com/julianstephens/pomolit/internal/settings"
	"github.com/julianstephens/pomolit/internal/storage"
	"github.com/julianstephens/pomolit/internal/timer"
	"github.com/julianstephens/pomolit/internal/tracking"
)

// Session slot backends selectable with --session.
const (
	SessionBackendDB     = "db"
	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
)

type Context struct {
	Store storage.Provider
	// ConfigDir holds the session file and the instance lock key.
	ConfigDir string
	// Session selects the session slot backend, SessionBackendDB by default.
	Session string
	// Clock and Bell default to the system clock and no bell.
	Clock timer.Clock
	Bell  io.Writer
	// TickInterval overrides the one-second countdown tick.
	TickInterval time.Duration
}

// App is a fully wired timer for one invocation.
type App struct {
	Engine   *timer.Engine
	Settings *settings.Live
	Recorder *tracking.Recorder
	Notifier *notifier.Notifier
}

// OpenApp loads the settings, restores the persisted session and connects
// the engine callbacks to focus tracking and completion feedback.
func (c *Context) OpenApp() (*App, error) {
	live, err := settings.Load(c.Store)
	if err != nil {
		return nil, err
	}

	backend, err := c.SessionBackend()
	if err != nil {
		return nil, err
	}

	app := &App{
		Settings: live,
		Recorder: tracking.NewRecorder(c.Store, live),
		Notifier: notifier.New(c.Bell),
	}

	callbacks := timer.Callbacks{
		OnSessionStart: func(s timer.State) {
			logger.Info("session started", "mode", s.Mode, "category", s.SelectedCategoryID, "remaining", s.RemainingSeconds)
		},
		OnFocusSessionComplete: app.Recorder.FocusCompleted,
		OnTimerComplete: func() {
			current := live.Settings()
			app.Notifier.Completed(app.Engine.State().Mode, notifier.Preferences{
				Bell:          current.BellEnabled,
				Notifications: current.NotificationsEnabled,
			})
		},
	}

	app.Engine = timer.New(session.NewStore(backend), live, callbacks, timer.Options{
		Clock:             c.Clock,
		TickInterval:      c.TickInterval,
		InitialFocusCount: app.Recorder.TodayCount(),
	})
	live.OnChange(func(models.Settings) {
		app.Engine.DurationsChanged()
	})
	app.Engine.Init()

	return app, nil
}

// SessionBackend returns the storage behind the session slot.
func (c *Context) SessionBackend() (session.Backend, error) {
	switch c.Session {
	case "", SessionBackendDB:
		return session.NewKVBackend(c.Store, constants.SessionKey), nil
	case SessionBackendFile:
		if c.ConfigDir == "" {
			return nil, errors.New("file session backend requires a config directory")
		}
		return session.NewFileBackend(filepath.Join(c.ConfigDir, constants.SessionFileName)), nil
	case SessionBackendMemory:
		return session.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", c.Session)
	}
}

// InstanceKey identifies the profile for the single-instance guard.
func (c *Context) InstanceKey() string {
	return constants.AppName + ":" + c.Store.GetConfigPath()
}

// ResolveCategory finds an active category by name (case-insensitive) or
// by ID.
func (c *Context) ResolveCategory(ref string) (models.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Category{}, errors.New("category is required")
	}

	cat, err := c.Store.GetCategoryByName(ref)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Category{}, err
	}

	cat, err = c.Store.GetCategory(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Category{}, fmt.Errorf("category not found: %s", ref)
	}
	return cat, err
}

// CategoryName returns the display name for id, or "" when unknown.
func (c *Context) CategoryName(id string) string {
	if id == "" {
		return ""
	}
	cat, err := c.Store.GetCategory(id)
	if err != nil {
		return ""
	}
	return cat.Name
}

// ParseMode accepts the short and long spellings of a timer mode.
func ParseMode(s string) (timer.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "focus", "pomodoro", "f":
		return timer.ModeFocus, nil
	case "short", "shortbreak", "short-break", "s":
		return timer.ModeShortBreak, nil
	case "long", "longbreak", "long-break", "l":
		return timer.ModeLongBreak, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (expected focus, short or long)", s)
	}
}

// PrintState writes a one-line status for s.
func (c *Context) PrintState(w io.Writer, s timer.State) {
	line := fmt.Sprintf("%s  %s  [%s]", s.Mode.Label(), timer.FormatRemaining(s.RemainingSeconds), s.Phase)
	if name := c.CategoryName(s.SelectedCategoryID); name != "" {
		line += "  " + name
	}
	fmt.Fprintln(w, line)
}
