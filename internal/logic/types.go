// Package logic contains pure business logic for the keypad lock: rising-edge
// detection on the button levels and the Locked/Waiting password state machine.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// NumButtons is the number of physical push buttons.
const NumButtons = 4

// Button identifies a physical button by index (0..3).
type Button int

const (
	Button0 Button = iota
	Button1
	Button2
	ButtonConfirm // button 3 submits the buffered password
)

// String returns the board label, e.g. "BTN2".
func (b Button) String() string {
	return fmt.Sprintf("BTN%d", int(b))
}

// Levels is one raw sample of all buttons (true = pressed).
type Levels [NumButtons]bool

// State represents the lock state.
type State string

const (
	StateLocked  State = "LOCKED"
	StateWaiting State = "WAITING"
)

// EventType represents something the lock reports to the diagnostic sinks.
type EventType string

const (
	EventDigitEntered      EventType = "DIGIT_ENTERED"
	EventPasswordCorrect   EventType = "PASSWORD_CORRECT"
	EventPasswordIncorrect EventType = "PASSWORD_INCORRECT"
	EventResetToLocked     EventType = "RESET_TO_LOCKED"
)

// Event is a lock event to be logged and published.
// It never carries the buffered digits, only how many there are.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Button    Button
	Fill      int   // buffer fill count after the event
	State     State // lock state after the event
	Indicator bool  // indicator level after the event
}

// EventCounts tracks what the lock has done since startup.
type EventCounts struct {
	Digits    int // digits appended to the buffer
	Dropped   int // digit presses ignored because the buffer was full
	Correct   int
	Incorrect int
	Resets    int
}

// Output is the result of one tick of the Machine.
type Output struct {
	Presses []Button // rising edges seen this tick, in button order
	Events  []Event

	// IndicatorChanged is true when the controller wrote the indicator this
	// tick; Indicator is then the level to drive.
	IndicatorChanged bool
	Indicator        bool
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
