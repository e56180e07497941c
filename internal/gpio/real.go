//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealBoard drives the keypad through the Linux GPIO character device.
type RealBoard struct {
	chip    *gpiocdev.Chip
	buttons *gpiocdev.Lines
	led     *gpiocdev.Line
}

// NewRealBoard opens the chip and configures the lines: buttons as inputs,
// the LED as an output driven on (the lock starts Locked). Any failure
// releases what was already requested and returns an error.
func NewRealBoard(cfg Config) (*RealBoard, error) {
	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", cfg.Chip, err)
	}

	// Pull-up for active-low switches to ground, pull-down otherwise, so an
	// unpressed button always reads released.
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullDown}
	if cfg.ActiveLow {
		opts = []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow}
	}
	buttons, err := chip.RequestLines(cfg.Buttons[:], opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %v: %w", cfg.Buttons, err)
	}

	led, err := chip.RequestLine(cfg.LED, gpiocdev.AsOutput(1))
	if err != nil {
		buttons.Close()
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", cfg.LED, err)
	}

	return &RealBoard{
		chip:    chip,
		buttons: buttons,
		led:     led,
	}, nil
}

// Read returns the logical level of every button.
func (r *RealBoard) Read() ([NumButtons]bool, error) {
	var levels [NumButtons]bool
	vals := make([]int, NumButtons)
	if err := r.buttons.Values(vals); err != nil {
		return levels, fmt.Errorf("read button pins: %w", err)
	}
	for i, v := range vals {
		levels[i] = v == 1
	}
	return levels, nil
}

// SetIndicator drives the LED.
func (r *RealBoard) SetIndicator(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.led.SetValue(v); err != nil {
		return fmt.Errorf("write LED pin: %w", err)
	}
	return nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before
// closing, which also turns the LED off.
func (r *RealBoard) Close() error {
	var errs []error

	if r.buttons != nil {
		if err := r.buttons.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button pins: %w", err))
		}
		if err := r.buttons.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
		}
	}

	if r.led != nil {
		if err := r.led.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure LED pin: %w", err))
		}
		if err := r.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
