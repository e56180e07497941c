package gpio

import (
	"errors"
	"testing"
)

func TestFakeBoardRead(t *testing.T) {
	samples := []Sample{
		Pressed(0),
		Pressed(1, 3),
		Pressed(),
	}

	f := NewFakeBoard(samples)

	// Read first sample
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [NumButtons]bool{true, false, false, false} {
		t.Errorf("sample 0: got %v", got)
	}

	// Read second sample
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [NumButtons]bool{false, true, false, true} {
		t.Errorf("sample 1: got %v", got)
	}

	// Read third sample
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [NumButtons]bool{} {
		t.Errorf("sample 2: got %v", got)
	}

	// Fourth read should repeat last sample
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [NumButtons]bool{} {
		t.Errorf("sample 3 (repeat): got %v", got)
	}
}

func TestFakeBoardNoSamples(t *testing.T) {
	f := NewFakeBoard(nil)

	_, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeBoardReadError(t *testing.T) {
	f := NewFakeBoard([]Sample{Pressed(2)})
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeBoardIndicator(t *testing.T) {
	f := NewFakeBoard(nil)
	if !f.Indicator {
		t.Error("indicator should start on")
	}

	if err := f.SetIndicator(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetIndicator(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.Indicator {
		t.Error("expected indicator on after last write")
	}
	if len(f.Writes) != 2 || f.Writes[0] != false || f.Writes[1] != true {
		t.Errorf("unexpected writes: %v", f.Writes)
	}
}

func TestFakeBoardWriteError(t *testing.T) {
	f := NewFakeBoard(nil)
	f.WriteError = errors.New("line busy")

	if err := f.SetIndicator(false); err == nil {
		t.Error("expected write error")
	}
	if len(f.Writes) != 0 {
		t.Errorf("failed write should not be recorded, got %v", f.Writes)
	}
	if !f.Indicator {
		t.Error("failed write should not change the indicator")
	}
}

func TestFakeBoardClose(t *testing.T) {
	f := NewFakeBoard([]Sample{Pressed()})

	if f.Closed {
		t.Error("should not be closed initially")
	}

	err := f.Close()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeBoardReset(t *testing.T) {
	samples := []Sample{
		Pressed(0),
		Pressed(1),
	}

	f := NewFakeBoard(samples)

	// Consume first sample
	f.Read()
	f.SetIndicator(false)

	// Reset
	f.Reset()

	// Should read first sample again
	got, _ := f.Read()
	if got != [NumButtons]bool(Pressed(0)) {
		t.Errorf("after reset: got %v", got)
	}
	if !f.Indicator || len(f.Writes) != 0 {
		t.Errorf("after reset: expected indicator on with no writes, got %v %v", f.Indicator, f.Writes)
	}
}

func TestDefaultPinsDistinct(t *testing.T) {
	seen := map[int]bool{DefaultPinLED: true}
	for i, p := range DefaultButtonPins {
		if seen[p] {
			t.Errorf("button %d pin %d collides with another default pin", i, p)
		}
		seen[p] = true
	}
}
