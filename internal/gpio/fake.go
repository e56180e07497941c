package gpio

import "errors"

// Sample is a single scripted reading of all buttons (true = pressed).
type Sample [NumButtons]bool

// Pressed returns a Sample with the given buttons down.
func Pressed(buttons ...int) Sample {
	var s Sample
	for _, b := range buttons {
		s[b] = true
	}
	return s
}

// FakeBoard is a test double that returns scripted button levels and
// records indicator writes.
type FakeBoard struct {
	// Samples contains scripted readings to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Indicator is the last level written; it starts on like the real LED.
	Indicator bool

	// Writes records every SetIndicator call in order.
	Writes []bool

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// WriteError, if set, will be returned by SetIndicator()
	WriteError error
}

// NewFakeBoard creates a FakeBoard with the given samples.
func NewFakeBoard(samples []Sample) *FakeBoard {
	return &FakeBoard{Samples: samples, Indicator: true}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeBoard) Read() ([NumButtons]bool, error) {
	if f.ReadError != nil {
		return [NumButtons]bool{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return [NumButtons]bool{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// SetIndicator records the write.
func (f *FakeBoard) SetIndicator(on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Indicator = on
	f.Writes = append(f.Writes, on)
	return nil
}

// Close marks the board as closed.
func (f *FakeBoard) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the samples and clears recorded writes.
func (f *FakeBoard) Reset() {
	f.index = 0
	f.Closed = false
	f.Indicator = true
	f.Writes = nil
}
