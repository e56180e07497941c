package logic

import "testing"

func levelsFor(buttons ...Button) Levels {
	var l Levels
	for _, b := range buttons {
		l[b] = true
	}
	return l
}

func TestSamplerNoPressesWhenReleased(t *testing.T) {
	s := NewSampler()
	for i := 0; i < 5; i++ {
		if got := s.Sample(Levels{}); len(got) != 0 {
			t.Errorf("tick %d: expected no presses, got %v", i, got)
		}
	}
}

func TestSamplerHeldButtonFiresOnce(t *testing.T) {
	for b := Button0; b <= ButtonConfirm; b++ {
		t.Run(b.String(), func(t *testing.T) {
			s := NewSampler()
			total := 0
			for i := 0; i < 10; i++ {
				got := s.Sample(levelsFor(b))
				if i == 0 {
					if len(got) != 1 || got[0] != b {
						t.Fatalf("first tick: expected [%s], got %v", b, got)
					}
				} else if len(got) != 0 {
					t.Errorf("tick %d: expected no presses while held, got %v", i, got)
				}
				total += len(got)
			}
			if total != 1 {
				t.Errorf("expected exactly 1 press over 10 held ticks, got %d", total)
			}
		})
	}
}

func TestSamplerRepressAfterRelease(t *testing.T) {
	s := NewSampler()
	seq := []bool{false, true, false, true}
	presses := 0
	for _, down := range seq {
		var l Levels
		l[Button2] = down
		presses += len(s.Sample(l))
	}
	if presses != 2 {
		t.Errorf("expected 2 presses for false,true,false,true, got %d", presses)
	}
}

func TestSamplerNoEventOnRelease(t *testing.T) {
	s := NewSampler()
	s.Sample(levelsFor(Button1))
	if got := s.Sample(Levels{}); len(got) != 0 {
		t.Errorf("expected no press on release, got %v", got)
	}
	if s.WasPressed(Button1) {
		t.Error("tracker should be cleared after release")
	}
}

func TestSamplerButtonOrder(t *testing.T) {
	s := NewSampler()
	got := s.Sample(levelsFor(ButtonConfirm, Button0, Button2, Button1))
	want := []Button{Button0, Button1, Button2, ButtonConfirm}
	if len(got) != len(want) {
		t.Fatalf("expected %d presses, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("press %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSamplerTrackersIndependent(t *testing.T) {
	s := NewSampler()
	s.Sample(levelsFor(Button0))

	// Button0 still held, Button3 newly pressed
	got := s.Sample(levelsFor(Button0, ButtonConfirm))
	if len(got) != 1 || got[0] != ButtonConfirm {
		t.Errorf("expected only BTN3, got %v", got)
	}
	if !s.WasPressed(Button0) || !s.WasPressed(ButtonConfirm) {
		t.Error("expected both trackers set")
	}
	if s.WasPressed(Button1) || s.WasPressed(Button2) {
		t.Error("expected BTN1 and BTN2 trackers clear")
	}
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		b    Button
		want string
	}{
		{Button0, "BTN0"},
		{Button1, "BTN1"},
		{Button2, "BTN2"},
		{ButtonConfirm, "BTN3"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("Button(%d).String(): got %q, want %q", int(tt.b), got, tt.want)
		}
	}
}
