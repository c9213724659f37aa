// Package dialogue implements the AT Dialogue State machine (spec §4.3):
// which response Kinds are currently awaited, when each was initiated,
// and when each times out. It gates dispatch of any new outbound AT
// command or SMS send via the aggregate Busy predicate.
package dialogue

import (
	"time"

	"github.com/urathe/AlarmDial/at"
)

// defaultTimeout applies to every kind except OK, which tolerates a
// slow multi-stage send (spec §4.3).
const (
	defaultTimeout = 9 * time.Second
	okTimeout      = 60 * time.Second
)

func timeoutFor(k at.Kind) time.Duration {
	if k == at.OK {
		return okTimeout
	}
	return defaultTimeout
}

type wait struct {
	awaiting    bool
	initiatedAt time.Time
}

// State tracks the in-flight AT expectations. The zero value is ready to
// use. State is only ever mutated from the control loop; it has no
// internal locking because it owns no concurrency boundary.
type State struct {
	waits map[at.Kind]*wait
}

// New returns a ready State.
func New() *State {
	return &State{waits: make(map[at.Kind]*wait)}
}

func (s *State) entry(k at.Kind) *wait {
	if s.waits == nil {
		s.waits = make(map[at.Kind]*wait)
	}
	w, ok := s.waits[k]
	if !ok {
		w = &wait{}
		s.waits[k] = w
	}
	return w
}

// Await starts waiting for k, stamping its initiation time. It does not
// write to the modem itself — callers issue the AT command through their
// transport and then call Await to register the expectation, mirroring
// spec §4.3's dispatch(command, expected_kind) as two explicit steps so
// the transport write can be tested independently of the state machine.
func (s *State) Await(k at.Kind, now time.Time) {
	w := s.entry(k)
	w.awaiting = true
	w.initiatedAt = now
}

// Clear resets both the awaiting flag and the initiation stamp for k, on
// arrival of the expected response or on timeout.
func (s *State) Clear(k at.Kind) {
	if w, ok := s.waits[k]; ok {
		w.awaiting = false
		w.initiatedAt = time.Time{}
	}
}

// Awaiting reports whether k is currently awaited.
func (s *State) Awaiting(k at.Kind) bool {
	w, ok := s.waits[k]
	return ok && w.awaiting
}

// Busy is the aggregate "a request is in flight" predicate (spec §3):
// true iff any kind is currently awaited. It gates dispatch of any new
// outbound AT command or SMS send.
func (s *State) Busy() bool {
	for _, w := range s.waits {
		if w.awaiting {
			return true
		}
	}
	return false
}

// TimedOut reports which currently-awaited kinds have exceeded their
// per-kind deadline as of now, without mutating state. Callers are
// expected to Clear each returned kind (and, for at.CMGR, abandon any
// pending multi-stage action — spec §4.3).
func (s *State) TimedOut(now time.Time) []at.Kind {
	var out []at.Kind
	for k, w := range s.waits {
		if w.awaiting && now.Sub(w.initiatedAt) >= timeoutFor(k) {
			out = append(out, k)
		}
	}
	return out
}
