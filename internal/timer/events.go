package timer

import "time"

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventCompleted   EventType = "completed"
)

// Event is an engine update for observers.
type Event struct {
	Type  EventType
	State State
	// Completed is the mode that just finished, set on EventCompleted.
	Completed Mode
	At        time.Time
}
