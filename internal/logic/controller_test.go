package logic

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// pressEach feeds each button to the controller as its own tick.
func pressEach(t *testing.T, c *Controller, buttons ...Button) []Event {
	t.Helper()
	var all []Event
	for _, b := range buttons {
		events, _ := c.Process([]Button{b}, testNow)
		all = append(all, events...)
	}
	return all
}

func TestNewController(t *testing.T) {
	c := NewController()
	if c.State() != StateLocked {
		t.Errorf("expected LOCKED, got %s", c.State())
	}
	if !c.Indicator() {
		t.Error("expected indicator ON at startup")
	}
	if c.Fill() != 0 {
		t.Errorf("expected empty buffer, got fill %d", c.Fill())
	}
}

func TestDigitEntry(t *testing.T) {
	c := NewController()
	events := pressEach(t, c, Button0, Button2, Button1)

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Type != EventDigitEntered {
			t.Errorf("event %d: expected DIGIT_ENTERED, got %s", i, e.Type)
		}
		if e.Fill != i+1 {
			t.Errorf("event %d: expected fill %d, got %d", i, i+1, e.Fill)
		}
		if e.State != StateLocked {
			t.Errorf("event %d: expected LOCKED, got %s", i, e.State)
		}
		if !e.Timestamp.Equal(testNow) {
			t.Errorf("event %d: unexpected timestamp %v", i, e.Timestamp)
		}
	}
	if events[1].Button != Button2 {
		t.Errorf("expected second event from BTN2, got %s", events[1].Button)
	}
	if c.buf.digits != [PasswordLength]uint8{0, 2, 1, EmptyDigit} {
		t.Errorf("unexpected buffer %v", c.buf.digits)
	}
}

func TestDigitsBeyondCapacityDropped(t *testing.T) {
	c := NewController()
	events := pressEach(t, c, Button2, Button2, Button2, Button2, Button0, Button1)

	if len(events) != 4 {
		t.Errorf("expected 4 DIGIT_ENTERED events, got %d", len(events))
	}
	if c.Fill() != PasswordLength {
		t.Errorf("expected fill %d, got %d", PasswordLength, c.Fill())
	}
	counts := c.Counts()
	if counts.Digits != 4 {
		t.Errorf("expected 4 digits counted, got %d", counts.Digits)
	}
	if counts.Dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", counts.Dropped)
	}
	if c.State() != StateLocked {
		t.Errorf("digit buttons must not change state, got %s", c.State())
	}
}

func TestConfirmCorrect(t *testing.T) {
	c := NewController()
	pressEach(t, c, Button0, Button0, Button0, Button0)
	if !c.CheckPassword() {
		t.Fatal("expected CheckPassword true for four BTN0 presses")
	}

	events, changed := c.Process([]Button{ButtonConfirm}, testNow)
	if !changed {
		t.Error("expected indicator write on confirm")
	}
	if len(events) != 1 || events[0].Type != EventPasswordCorrect {
		t.Fatalf("expected PASSWORD_CORRECT, got %+v", events)
	}
	if c.State() != StateWaiting {
		t.Errorf("expected WAITING, got %s", c.State())
	}
	if c.Indicator() {
		t.Error("expected indicator OFF after confirm")
	}
	if c.Fill() != 0 {
		t.Errorf("expected cleared buffer, got fill %d", c.Fill())
	}
	if events[0].State != StateWaiting || events[0].Indicator || events[0].Fill != 0 {
		t.Errorf("event should carry post-confirm state, got %+v", events[0])
	}
	if c.Counts().Correct != 1 {
		t.Errorf("expected 1 correct, got %d", c.Counts().Correct)
	}
}

func TestConfirmIncorrect(t *testing.T) {
	tests := []struct {
		name   string
		digits []Button
	}{
		{"mixed", []Button{Button0, Button1, Button2, Button1}},
		{"second button four times", []Button{Button1, Button1, Button1, Button1}},
		{"too short", []Button{Button0, Button0, Button0}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			pressEach(t, c, tt.digits...)

			events, _ := c.Process([]Button{ButtonConfirm}, testNow)
			if len(events) != 1 || events[0].Type != EventPasswordIncorrect {
				t.Fatalf("expected PASSWORD_INCORRECT, got %+v", events)
			}
			if c.State() != StateWaiting {
				t.Errorf("expected WAITING, got %s", c.State())
			}
			if c.Indicator() {
				t.Error("expected indicator OFF")
			}
			if c.Fill() != 0 {
				t.Errorf("expected cleared buffer, got fill %d", c.Fill())
			}
			if c.Counts().Incorrect != 1 {
				t.Errorf("expected 1 incorrect, got %d", c.Counts().Incorrect)
			}
		})
	}
}

func TestWaitingAnyButtonResets(t *testing.T) {
	for b := Button0; b <= ButtonConfirm; b++ {
		t.Run(b.String(), func(t *testing.T) {
			c := NewController()
			pressEach(t, c, ButtonConfirm)
			if c.State() != StateWaiting {
				t.Fatalf("setup: expected WAITING, got %s", c.State())
			}

			events, changed := c.Process([]Button{b}, testNow)
			if !changed {
				t.Error("expected indicator write on reset")
			}
			if len(events) != 1 || events[0].Type != EventResetToLocked {
				t.Fatalf("expected RESET_TO_LOCKED, got %+v", events)
			}
			if events[0].Button != b {
				t.Errorf("expected event from %s, got %s", b, events[0].Button)
			}
			if c.State() != StateLocked {
				t.Errorf("expected LOCKED, got %s", c.State())
			}
			if !c.Indicator() {
				t.Error("expected indicator ON")
			}
			if c.Fill() != 0 {
				t.Errorf("expected fill 0, got %d", c.Fill())
			}
		})
	}
}

func TestWaitingMultiplePressesOneTick(t *testing.T) {
	c := NewController()
	pressEach(t, c, ButtonConfirm)

	events, changed := c.Process([]Button{Button0, Button1, Button2, ButtonConfirm}, testNow)
	if !changed {
		t.Error("expected indicator write")
	}
	if len(events) != 1 {
		t.Fatalf("expected a single reset event, got %d", len(events))
	}
	if c.State() != StateLocked {
		t.Errorf("expected LOCKED, got %s", c.State())
	}
	if c.Fill() != 0 {
		t.Errorf("later presses in the reset tick must not enter digits, fill %d", c.Fill())
	}
	if c.Counts().Resets != 1 {
		t.Errorf("expected 1 reset, got %d", c.Counts().Resets)
	}
}

func TestLockedDigitsThenConfirmSameTick(t *testing.T) {
	c := NewController()
	pressEach(t, c, Button0, Button0, Button0)

	events, changed := c.Process([]Button{Button0, ButtonConfirm}, testNow)
	if !changed {
		t.Error("expected indicator write")
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventDigitEntered || events[0].Fill != 4 {
		t.Errorf("expected digit entered to fill 4 first, got %+v", events[0])
	}
	if events[1].Type != EventPasswordCorrect {
		t.Errorf("expected PASSWORD_CORRECT, got %s", events[1].Type)
	}
}

func TestDigitPressNoIndicatorWrite(t *testing.T) {
	c := NewController()
	_, changed := c.Process([]Button{Button1}, testNow)
	if changed {
		t.Error("digit entry must not write the indicator")
	}
}
