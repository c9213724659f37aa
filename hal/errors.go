package hal

import "errors"

var (
	// ErrNilContext is returned when a nil context is passed to a
	// function that requires a valid one.
	ErrNilContext = errors.New("hal: context is nil")

	// ErrMissingPort is returned when attempting to dial a serial
	// connection without specifying a port name.
	ErrMissingPort = errors.New("hal: missing required serial port name")
)
