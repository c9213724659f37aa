// Package schedule implements the Periodic Actions Scheduler (spec
// §4.8): three independent wall-clock cadences, each gated on !busy.
package schedule

import "time"

// Default cadences (spec §4.8).
const (
	CPSIInterval = 4 * 7 * 24 * time.Hour // ~4 weeks
	CREGInterval = 8 * time.Hour
	CMGDInterval = 24 * time.Hour
)

// Cadence tracks a single recurring duty's next-due time.
type Cadence struct {
	interval time.Duration
	nextDue  time.Time
}

// NewCadence returns a Cadence due immediately, so the first Due(now)
// fires the duty once at startup and thereafter every interval.
func NewCadence(interval time.Duration, now time.Time) *Cadence {
	return &Cadence{interval: interval, nextDue: now}
}

// Due reports whether the cadence has elapsed as of now. It does not
// itself advance the schedule — callers must call Fired once they have
// actually dispatched the duty (dispatch may be deferred by !busy).
func (c *Cadence) Due(now time.Time) bool {
	return !now.Before(c.nextDue)
}

// Fired advances the cadence to the next occurrence relative to now.
func (c *Cadence) Fired(now time.Time) {
	c.nextDue = now.Add(c.interval)
}

// Scheduler bundles the three cadences the control loop drives (spec
// §4.8).
type Scheduler struct {
	ModemHealth  *Cadence
	NetworkProbe *Cadence
	SMSCleanup   *Cadence
}

// New returns a Scheduler with all three duties due immediately.
func New(now time.Time) *Scheduler {
	return &Scheduler{
		ModemHealth:  NewCadence(CPSIInterval, now),
		NetworkProbe: NewCadence(CREGInterval, now),
		SMSCleanup:   NewCadence(CMGDInterval, now),
	}
}

// OfflinePolicy decides, from a sequence of modem-health probe outcomes,
// whether the firmware should reboot (spec §4.9, design note Open
// Question #2: "a port may wish to require N consecutive offline
// readings before rebooting"). Online reports a successful probe
// ("Online" seen); Offline reports an unsuccessful one (some other
// status seen, as opposed to a bare timeout, which is not an Offline
// report at all — §4.8: "a single timeout ... no reboot on a single
// timeout").
type OfflinePolicy interface {
	// Online resets whatever offline streak the policy is tracking.
	Online()
	// Offline records one non-Online +CPSI reading and reports whether
	// the accumulated evidence now warrants a reboot.
	Offline() (reboot bool)
}

// ImmediatePolicy reproduces the literal spec behaviour: reboot on the
// very first non-"Online" +CPSI reading. This is the default policy.
type ImmediatePolicy struct{}

// Online is a no-op; ImmediatePolicy has no streak to reset.
func (ImmediatePolicy) Online() {}

// Offline always requests an immediate reboot.
func (ImmediatePolicy) Offline() bool { return true }

// ConsecutivePolicy only requests a reboot after N consecutive non-Online
// readings, addressing the conflation design note #2 names ("not yet
// registered after boot" vs "lost registration"). It is available for a
// stricter deployment but is not installed by default.
type ConsecutivePolicy struct {
	Threshold int
	streak    int
}

// Online resets the consecutive-offline streak.
func (p *ConsecutivePolicy) Online() { p.streak = 0 }

// Offline increments the streak and reports whether it has reached
// Threshold.
func (p *ConsecutivePolicy) Offline() bool {
	p.streak++
	return p.streak >= p.Threshold
}
