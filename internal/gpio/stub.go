//go:build !linux

package gpio

import "errors"

// RealBoard is not available on non-Linux platforms.
type RealBoard struct{}

// NewRealBoard returns an error on non-Linux platforms.
func NewRealBoard(cfg Config) (*RealBoard, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealBoard) Read() ([NumButtons]bool, error) {
	return [NumButtons]bool{}, errors.New("gpio: not supported")
}

// SetIndicator is not implemented on non-Linux platforms.
func (r *RealBoard) SetIndicator(on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealBoard) Close() error {
	return nil
}
