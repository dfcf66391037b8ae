package timer

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/logger"
	"github.com/julianstephens/pomolit/internal/session"
)

// SessionStore is the durable slot holding the active session. The engine
// is its only reader and writer.
type SessionStore interface {
	Save(rec session.Record)
	Load() *session.Record
	Clear()
}

// Callbacks are invoked after a transition, outside the engine lock.
type Callbacks struct {
	OnSessionStart         func(State)
	OnFocusSessionComplete func(categoryID string)
	OnTimerComplete        func()
}

// Options tunes an Engine.
type Options struct {
	Clock        Clock
	TickInterval time.Duration
	// InitialFocusCount seeds the focus counter when no session is
	// restored.
	InitialFocusCount int
}

// Engine is the authoritative timer.
type Engine struct {
	mu          sync.Mutex
	store       SessionStore
	durations   DurationProvider
	callbacks   Callbacks
	options     Options
	state       State
	initialized bool
	events      []chan Event
	wake        chan struct{}
}

// New creates an engine. It holds no state until Init is called.
func New(store SessionStore, durations DurationProvider, callbacks Callbacks, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	if options.TickInterval <= 0 {
		options.TickInterval = constants.TickInterval
	}
	if durations == nil {
		durations = StaticDurations(DefaultDurations())
	}

	return &Engine{
		store:     store,
		durations: durations,
		callbacks: callbacks,
		options:   options,
		state:     DefaultState(durations.Durations()),
		wake:      make(chan struct{}, 1),
	}
}

// Init restores the persisted session, reconciling a running one against
// the wall clock. It runs once; later calls do nothing.
func (e *Engine) Init() {
	e.mu.Lock()
	if e.initialized {
		e.mu.Unlock()
		return
	}

	now := e.options.Clock.Now()
	d := e.durations.Durations()
	rec := e.store.Load()

	state, ok := restore(rec, now, d)
	if !ok {
		if rec != nil {
			logger.Debug("dropping idle session record")
			e.store.Clear()
		}
		state = DefaultState(d)
		state.CompletedFocusCount = e.options.InitialFocusCount
	} else {
		logger.Debug("restored session", "phase", state.Phase, "mode", state.Mode, "remaining", state.RemainingSeconds)
	}

	e.state = state
	e.initialized = true
	e.emitLocked(Event{Type: EventStateChange, State: state.Clone(), At: now})
	e.mu.Unlock()

	e.signal()
}

// Initialized reports whether Init has completed.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Durations returns the configuration the engine currently times against.
func (e *Engine) Durations() Durations {
	return e.durations.Durations()
}

// Start begins a session in the current mode. It is ignored unless the
// timer is idle and categoryID is non-empty.
func (e *Engine) Start(categoryID string) {
	e.dispatch(StartAction{CategoryID: categoryID, At: e.options.Clock.Now()})
}

// Pause freezes a running session.
func (e *Engine) Pause() {
	e.dispatch(PauseAction{})
}

// Resume continues a paused session.
func (e *Engine) Resume() {
	e.dispatch(ResumeAction{At: e.options.Clock.Now()})
}

// Reset returns to the default state and forgets the session.
func (e *Engine) Reset() {
	e.dispatch(ResetAction{})
}

// SwitchMode selects a mode while idle.
func (e *Engine) SwitchMode(mode Mode) {
	e.dispatch(SwitchModeAction{Mode: mode})
}

// Tick advances a running session by one second. Run calls it on every
// tick; hosts that drive their own clock may call it directly.
func (e *Engine) Tick() {
	e.dispatch(TickAction{At: e.options.Clock.Now()})
}

// DurationsChanged tells the engine the durations configuration changed.
// An idle timer picks up the new target; a countdown in progress does not.
func (e *Engine) DurationsChanged() {
	e.dispatch(DurationsChangedAction{})
}

// Subscribe registers a new observer channel. Events are dropped for
// observers that fall behind.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Close closes every observer channel.
func (e *Engine) Close() {
	e.mu.Lock()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Run drives the countdown until ctx is cancelled. A ticker exists only
// while a session is running.
func (e *Engine) Run(ctx context.Context) {
	for {
		if !e.running() {
			select {
			case <-ctx.Done():
				return
			case <-e.wake:
				continue
			}
		}

		ticker := time.NewTicker(e.options.TickInterval)
		e.tickWhileRunning(ctx, ticker)
		ticker.Stop()

		if ctx.Err() != nil {
			return
		}
	}
}

func (e *Engine) tickWhileRunning(ctx context.Context, ticker *time.Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		case <-e.wake:
		}
		if !e.running() {
			return
		}
	}
}

func (e *Engine) running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized && e.state.Phase == PhaseRunning
}

func (e *Engine) dispatch(action Action) {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		logger.Debug("ignoring command before init", "action", actionName(action))
		return
	}

	next, effects := Reduce(e.state, action, e.durations.Durations())
	if !effects.Applied {
		phase := e.state.Phase
		e.mu.Unlock()
		logger.Debug("ignoring command", "action", actionName(action), "phase", phase)
		return
	}

	now := e.options.Clock.Now()
	e.state = next
	if effects.Clear {
		e.store.Clear()
	}
	if effects.Persist {
		e.store.Save(record(next, now))
	}

	snapshot := next.Clone()
	event := Event{Type: EventStateChange, State: snapshot, At: now}
	switch {
	case effects.TimerCompleted:
		event.Type = EventCompleted
		event.Completed = effects.CompletedMode
	case isTick(action):
		event.Type = EventTick
	}
	e.emitLocked(event)
	e.mu.Unlock()

	e.signal()
	e.notify(effects, snapshot)
}

// notify runs callbacks in order: session start, focus completion, then
// timer completion.
func (e *Engine) notify(effects Effects, snapshot State) {
	if effects.SessionStarted && e.callbacks.OnSessionStart != nil {
		e.callbacks.OnSessionStart(snapshot)
	}
	if effects.FocusCompleted && e.callbacks.OnFocusSessionComplete != nil {
		e.callbacks.OnFocusSessionComplete(effects.CategoryID)
	}
	if effects.TimerCompleted && e.callbacks.OnTimerComplete != nil {
		e.callbacks.OnTimerComplete()
	}
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func isTick(action Action) bool {
	_, ok := action.(TickAction)
	return ok
}

func actionName(action Action) string {
	switch action.(type) {
	case StartAction:
		return "start"
	case PauseAction:
		return "pause"
	case ResumeAction:
		return "resume"
	case ResetAction:
		return "reset"
	case SwitchModeAction:
		return "switch_mode"
	case TickAction:
		return "tick"
	case DurationsChangedAction:
		return "durations_changed"
	default:
		return "unknown"
	}
}
