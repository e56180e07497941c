package logic

// Sampler turns raw button levels into press events. It keeps one "was
// pressed" flag per button and reports a press only on the tick the level
// goes from released to pressed. There is no timing debounce: the tick
// interval is the only filter.
type Sampler struct {
	wasPressed [NumButtons]bool
}

// NewSampler creates a Sampler with every button released.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample returns the buttons with a rising edge since the previous call, in
// button order. Every tracker is then updated to the current level whether
// or not a press was reported.
func (s *Sampler) Sample(levels Levels) []Button {
	var presses []Button
	for i, down := range levels {
		if down && !s.wasPressed[i] {
			presses = append(presses, Button(i))
		}
		s.wasPressed[i] = down
	}
	return presses
}

// WasPressed reports the level stored for b on the last Sample.
func (s *Sampler) WasPressed(b Button) bool {
	return s.wasPressed[b]
}
