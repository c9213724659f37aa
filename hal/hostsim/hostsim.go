// Package hostsim provides non-hardware implementations of the hal
// interfaces, grounded on the teacher's modem.TestTransport channel-based
// fake transport, so the control core (package system) can boot and run
// end-to-end on a development host without real modem silicon, GPIO, or
// flash.
package hostsim

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/urathe/AlarmDial/config"
	"github.com/urathe/AlarmDial/hal"
)

// LoopbackTransport is a test/simulation transport driven entirely by
// SendLine; nothing is actually dialled. Adapted from the teacher's
// modem.TestTransport: Read blocks on a channel so the UART reader
// goroutine behaves exactly as it would against a real blocking serial
// port.
type LoopbackTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	closed   bool
}

// NewLoopbackTransport returns a ready LoopbackTransport.
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{readChan: make(chan []byte, 64)}
}

// Write discards the written bytes; callers inspect what was sent via
// their own wrapping, if desired (this type only simulates the read side).
func (t *LoopbackTransport) Write(p []byte) (int, error) {
	return len(p), nil
}

// Read blocks until SendLine delivers data or the transport is closed.
func (t *LoopbackTransport) Read(p []byte) (int, error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

// Close unblocks any pending Read with io.EOF.
func (t *LoopbackTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendLine queues raw bytes (caller supplies CRLF) to be read as though
// the modem had sent them.
func (t *LoopbackTransport) SendLine(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}

// LoopbackDialer always hands back the same pre-built LoopbackTransport,
// so a test or demo can keep feeding it lines after Dial returns.
type LoopbackDialer struct {
	Transport *LoopbackTransport
}

// NewLoopbackDialer returns a dialer backed by a fresh LoopbackTransport.
func NewLoopbackDialer() *LoopbackDialer {
	return &LoopbackDialer{Transport: NewLoopbackTransport()}
}

// Dial returns the dialer's fixed transport, or ctx.Err() if ctx is
// already done.
func (d *LoopbackDialer) Dial(ctx context.Context) (hal.Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.Transport, nil
}

// MemoryPins is an in-memory GPIOInput: every pin starts electrically
// high (idle, negative logic means "not activated") until Set is called,
// matching how the real contact inputs idle high through a pull-up.
type MemoryPins struct {
	mu    sync.Mutex
	level map[int]bool
}

// NewMemoryPins returns a MemoryPins with every pin idling high.
func NewMemoryPins() *MemoryPins {
	return &MemoryPins{level: make(map[int]bool)}
}

// Read reports the pin's current electrical level (default true/high).
func (p *MemoryPins) Read(pin int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	high, ok := p.level[pin]
	if !ok {
		return true, nil
	}
	return high, nil
}

// Set drives pin to the given electrical level, for simulated button
// presses and contact closures.
func (p *MemoryPins) Set(pin int, electricalHigh bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level[pin] = electricalHigh
}

// BlinkLED counts heartbeat toggles instead of driving a real LED.
type BlinkLED struct {
	mu     sync.Mutex
	Toggles int
}

// Toggle increments the toggle count.
func (l *BlinkLED) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Toggles++
}

// FileStore is a config.Store backed by a single plain file on disk, in
// place of a reserved flash sector. It is not safe for concurrent use by
// more than one process; the control loop is the only writer.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path. The file need not
// already exist; ReadRecord reports an erased-flash (checksum-invalid)
// record in that case, which config.Load turns into factory defaults,
// matching the blank-flash boot case (spec §4.7, §7).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ReadRecord reads the backing file, zero-padding or truncating to
// config.RecordLen. A missing file reads back as 0xFF throughout,
// matching the erased state of real NOR/NAND flash, so a never-written
// sector reliably fails the checksum check and falls back to defaults
// rather than coincidentally validating as an all-zero record would.
func (s *FileStore) ReadRecord() ([config.RecordLen]byte, error) {
	var out [config.RecordLen]byte
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			for i := range out {
				out[i] = 0xFF
			}
			return out, nil
		}
		return out, err
	}
	copy(out[:], data)
	return out, nil
}

// WriteRecord overwrites the backing file with raw.
func (s *FileStore) WriteRecord(raw [config.RecordLen]byte) error {
	return os.WriteFile(s.path, raw[:], 0o600)
}

// MutexCriticalSection renders hal.CriticalSection as an ordinary mutex:
// on a development host there is no interrupt controller to mask, but the
// exclusion the real firmware wants — no flash write overlapping the
// reader goroutine while it publishes a byte — is still meaningful
// between goroutines.
type MutexCriticalSection struct {
	mu sync.Mutex
}

// Enter blocks until the section is free.
func (c *MutexCriticalSection) Enter() { c.mu.Lock() }

// Exit releases the section.
func (c *MutexCriticalSection) Exit() { c.mu.Unlock() }
