// Package console prints the lock's diagnostic lines for someone watching
// the device's terminal or serial console.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sweeney/keypad-lock/internal/logic"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// Printer writes one line per lock event. Colour follows fatih/color's
// detection: off when the output is not a terminal or NO_COLOR is set.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Banner prints the startup lines, including the buttons that unlock.
func (p *Printer) Banner() {
	cyan.Fprintln(p.out, "Password system started")
	fmt.Fprintf(p.out, "Correct password: %s\n", SecretLabel())
}

// Event prints the line for a single lock event.
func (p *Printer) Event(e logic.Event) {
	switch e.Type {
	case logic.EventDigitEntered:
		fmt.Fprintf(p.out, "Entered: %s\n", e.Button)
	case logic.EventPasswordCorrect:
		green.Fprintln(p.out, "Correct!")
	case logic.EventPasswordIncorrect:
		red.Fprintln(p.out, "Incorrect!")
	case logic.EventResetToLocked:
		yellow.Fprintln(p.out, "Resetting to locked state")
	default:
		fmt.Fprintln(p.out, string(e.Type))
	}
}

// SecretLabel names the buttons of the secret in entry order,
// e.g. "BTN0, BTN0, BTN0, BTN0".
func SecretLabel() string {
	secret := logic.Secret()
	labels := make([]string, len(secret))
	for i, d := range secret {
		labels[i] = logic.Button(d).String()
	}
	return strings.Join(labels, ", ")
}
