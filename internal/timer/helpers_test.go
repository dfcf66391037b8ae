package timer

import (
	"sync"
	"time"

	"github.com/julianstephens/pomolit/internal/session"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingStore is an in-memory SessionStore that counts calls.
type recordingStore struct {
	mu     sync.Mutex
	rec    *session.Record
	saves  int
	clears int
}

func (s *recordingStore) Save(rec session.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.rec = &rec
}

func (s *recordingStore) Load() *session.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil
	}
	rec := *s.rec
	return &rec
}

func (s *recordingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.rec = nil
}

func (s *recordingStore) current() *session.Record {
	return s.Load()
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type mutableDurations struct {
	mu sync.Mutex
	d  Durations
}

func (m *mutableDurations) Durations() Durations {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d
}

func (m *mutableDurations) set(d Durations) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d = d
}

type callbackLog struct {
	mu        sync.Mutex
	started   []string
	focus     []string
	completed int
	order     []string
}

func (l *callbackLog) callbacks() Callbacks {
	return Callbacks{
		OnSessionStart: func(s State) {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.started = append(l.started, s.SelectedCategoryID)
			l.order = append(l.order, "start")
		},
		OnFocusSessionComplete: func(categoryID string) {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.focus = append(l.focus, categoryID)
			l.order = append(l.order, "focus")
		},
		OnTimerComplete: func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.completed++
			l.order = append(l.order, "complete")
		},
	}
}

func newTestEngine(store *recordingStore, clock *fakeClock, log *callbackLog) *Engine {
	engine := New(store, StaticDurations(DefaultDurations()), log.callbacks(), Options{Clock: clock})
	engine.Init()
	return engine
}

func millisAgo(now time.Time, ms int64) *int64 {
	v := now.UnixMilli() - ms
	return &v
}
