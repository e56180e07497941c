package logic

import "time"

// Controller is the Locked/Waiting state machine. It owns the password
// buffer and the indicator level (ON while Locked).
type Controller struct {
	state     State
	buf       PasswordBuffer
	indicator bool
	counts    EventCounts
}

// NewController creates a Controller in the Locked state with an empty
// buffer and the indicator on.
func NewController() *Controller {
	return &Controller{
		state:     StateLocked,
		buf:       NewPasswordBuffer(),
		indicator: true,
	}
}

// Process applies the presses of one tick, which must be in button order.
// Every press is judged against the state the tick started in, so a tick
// makes at most one state transition. It returns the resulting events and
// whether the indicator was written.
func (c *Controller) Process(presses []Button, now time.Time) ([]Event, bool) {
	var events []Event
	start := c.state
	for _, b := range presses {
		if c.state != start {
			// Already transitioned this tick; the rest are absorbed.
			break
		}
		switch start {
		case StateLocked:
			if e, ok := c.pressLocked(b, now); ok {
				events = append(events, e)
			}
		case StateWaiting:
			events = append(events, c.resetToLocked(b, now))
		}
	}
	return events, c.state != start
}

func (c *Controller) pressLocked(b Button, now time.Time) (Event, bool) {
	if b == ButtonConfirm {
		return c.confirm(now), true
	}
	if !c.buf.Append(uint8(b)) {
		c.counts.Dropped++
		return Event{}, false
	}
	c.counts.Digits++
	return c.event(EventDigitEntered, b, now), true
}

// confirm checks the buffer and always moves to Waiting with the indicator off.
func (c *Controller) confirm(now time.Time) Event {
	typ := EventPasswordIncorrect
	if c.CheckPassword() {
		typ = EventPasswordCorrect
		c.counts.Correct++
	} else {
		c.counts.Incorrect++
	}
	c.indicator = false
	c.state = StateWaiting
	c.buf.Reset()
	return c.event(typ, ButtonConfirm, now)
}

func (c *Controller) resetToLocked(b Button, now time.Time) Event {
	c.state = StateLocked
	c.indicator = true
	c.buf.Reset()
	c.counts.Resets++
	return c.event(EventResetToLocked, b, now)
}

func (c *Controller) event(typ EventType, b Button, now time.Time) Event {
	return Event{
		Timestamp: now,
		Type:      typ,
		Button:    b,
		Fill:      c.buf.Fill(),
		State:     c.state,
		Indicator: c.indicator,
	}
}

// CheckPassword reports whether exactly PasswordLength digits have been
// entered and they equal the secret in order.
func (c *Controller) CheckPassword() bool {
	return c.buf.Matches(secret)
}

// State returns the current lock state.
func (c *Controller) State() State {
	return c.state
}

// Indicator returns the current indicator level.
func (c *Controller) Indicator() bool {
	return c.indicator
}

// Fill returns the number of buffered digits.
func (c *Controller) Fill() int {
	return c.buf.Fill()
}

// Counts returns a copy of the event counters.
func (c *Controller) Counts() EventCounts {
	return c.counts
}
