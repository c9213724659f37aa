package hal

import (
	"context"
	"fmt"

	"go.bug.st/serial"
)

// SerialDialer opens the modem UART over a serial port using
// go.bug.st/serial, adapted directly from the teacher's
// modem.SerialDialer. Serial parameters are permanently 9600 8N1, no
// flow control (spec §6).
type SerialDialer struct {
	// PortName is the OS device path (e.g. "/dev/ttyUSB0", "COM3").
	PortName string
}

// mode returns the fixed serial configuration the modem requires (spec §6).
func (d SerialDialer) mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Dial opens the serial port. If ctx is canceled before the open
// completes, Dial returns ctx.Err(). If the port opens concurrently with
// cancellation, the port is closed before returning.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if d.PortName == "" {
		return nil, ErrMissingPort
	}
	if ctx == nil {
		return nil, ErrNilContext
	}

	type result struct {
		p   serial.Port
		err error
	}
	ch := make(chan result, 1)

	go func() {
		p, err := serial.Open(d.PortName, d.mode())
		ch <- result{p: p, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			r := <-ch
			if r.err == nil && r.p != nil {
				_ = r.p.Close()
			}
		}()
		return nil, ctx.Err()

	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("open serial port %q: %w", d.PortName, r.err)
		}
		return r.p, nil
	}
}
