// Package inputs implements the Input Scanner (spec §4.5): it polls
// contact inputs, debounces at the scan cadence, and reports
// notification-worthy transitions.
package inputs

import (
	"time"

	"github.com/urathe/AlarmDial/config"
)

// ScanInterval is the minimum time between scan ticks (spec §4.5: "at
// least 1 s has elapsed since the last scan").
const ScanInterval = time.Second

// PinReader reads the current electrical level of a single contact
// input. true means the pin is electrically high. Implementations live
// in package hal (GPIO is an out-of-scope external collaborator, spec
// §1).
type PinReader interface {
	Read(pin int) (electricalHigh bool, err error)
}

// Transition describes a single input's state change observed during a
// scan tick.
type Transition struct {
	Pin       int
	Activated bool // true on rising edge of "activated" (negative logic)
}

// Scanner tracks the last observed logical level of each input (spec
// §3: "Input scan state").
type Scanner struct {
	lastActivated [config.NumInputs]bool
	initialized   bool
}

// NewScanner returns a Scanner with no prior observations; the first
// Scan establishes a baseline and never itself reports transitions.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan reads every input through r, inverts for negative logic (spec
// §4.5: "electrical low" means "activated"), and returns every pin whose
// activated state changed since the previous Scan. Multiple pins may
// change within one call; the caller (package system) is responsible for
// only sending one notification SMS per tick and deferring the rest to
// later ticks (spec §4.5), since Scan itself has no notion of busy.
func (s *Scanner) Scan(r PinReader) ([]Transition, error) {
	var changed []Transition
	for pin := 0; pin < config.NumInputs; pin++ {
		high, err := r.Read(pin)
		if err != nil {
			return nil, err
		}
		activated := !high // negative logic

		if s.initialized && activated != s.lastActivated[pin] {
			changed = append(changed, Transition{Pin: pin, Activated: activated})
		}
		s.lastActivated[pin] = activated
	}
	s.initialized = true
	return changed, nil
}

// MessageFor returns the message to send for a transition given the
// input's configuration (spec §4.5): message_on_activate on rising edge
// of activated, else message_on_deactivate.
func MessageFor(t Transition, per config.PerInput) string {
	if t.Activated {
		return per.MessageOnActivate
	}
	return per.MessageOnDeactivate
}
