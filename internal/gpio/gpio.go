// Package gpio provides keypad button input and indicator output with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// NumButtons is the number of button input lines.
const NumButtons = 4

// Reader reads the button inputs.
type Reader interface {
	// Read returns the logical level of every button, true = pressed.
	// Active-low wiring is already accounted for.
	Read() ([NumButtons]bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Indicator drives the indicator LED.
type Indicator interface {
	SetIndicator(on bool) error
}

// Board is the whole keypad: four button inputs and one indicator output.
type Board interface {
	Reader
	Indicator
}

// Default pin definitions (BCM numbering)
const (
	DefaultChip   = "gpiochip0"
	DefaultPinLED = 24
)

// DefaultButtonPins are the BCM pins for BTN0..BTN3.
var DefaultButtonPins = [NumButtons]int{17, 27, 22, 23}

// Config describes how the keypad is wired.
type Config struct {
	Chip      string
	Buttons   [NumButtons]int
	LED       int
	ActiveLow bool // buttons pull the line low when pressed
}
