// Package hal names the external collaborators spec §1 declares out of
// scope for the control core: "low-level serial driver bring-up, GPIO
// pin electrical configuration, LED heartbeat, board-specific clock and
// power init, the modem's own firmware behaviour beyond the AT subset
// used, and the host-side tooling for flashing firmware." Each is
// represented here purely as an interface; only package system depends
// on a concrete implementation being wired in at boot.
package hal

//go:generate go run go.uber.org/mock/mockgen -source=hal.go -destination=mock_hal.go -package=hal

import (
	"context"
	"io"
)

// Transport is an established, bidirectional byte stream to the modem
// (carried from the teacher's modem.Transport).
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to the modem (carried from the teacher's
// modem.Dialer).
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// GPIOInput reads the electrical level of a single digital input pin.
// Every contact input and the reset-to-defaults input share this
// interface; negative-logic inversion happens above this layer (package
// inputs, package watchdog).
type GPIOInput interface {
	Read(pin int) (electricalHigh bool, err error)
}

// LED drives the 1 Hz heartbeat indicator (spec §4.10, §6).
type LED interface {
	Toggle()
}

// CriticalSection excludes the UART reader from running concurrently
// with a flash erase+program pair (spec §4.7: "this is the only
// critical section in the design"; design note: "expose this explicitly
// as a 'critical section' abstraction ... not ad-hoc interrupt
// disable"). On real hardware Enter/Exit disable and re-enable global
// interrupts; in this module's Go rendering (package system) the UART
// reader goroutine also calls Enter/Exit around every byte it publishes, so a flash write's Enter blocks until the
// reader is between bytes and holds off the next one until Exit.
type CriticalSection interface {
	Enter()
	Exit()
}
