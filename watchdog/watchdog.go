// Package watchdog implements the Reset & Watchdog component (spec
// §4.9): feeding the hardware watchdog every loop iteration, and the two
// deliberate unfeed paths (modem diagnosed offline; local reset-to-
// defaults input).
package watchdog

import "time"

// NormalDeadline is armed at boot and fed on every loop iteration (spec
// §4.9, §5: "8 s").
const NormalDeadline = 8 * time.Second

// ForceRebootDeadline is armed instead of being fed, guaranteeing a
// reboot within milliseconds once the modem is diagnosed offline (spec
// §4.9: "re-arms the watchdog to 1 ms and spins").
const ForceRebootDeadline = time.Millisecond

// ResetDebounce is how long the reset-to-defaults input must be held
// asserted before it takes effect (spec §4.9).
const ResetDebounce = time.Second

// ResetCooldown prevents a storm of repeated resets (spec §4.9).
const ResetCooldown = 10 * time.Second

// Timer is the named interface to the hardware watchdog peripheral
// (spec §1: out of scope, external collaborator). Arm sets (or resets)
// the deadline after which the timer will reset the MCU if not fed
// again; Feed postpones that deadline by the timer's currently armed
// duration.
type Timer interface {
	Arm(deadline time.Duration)
	Feed()
}

// Controller drives Timer per the control loop's per-iteration feed and
// the two deliberate unfeed paths.
type Controller struct {
	timer     Timer
	rebooting bool
}

// New arms timer to NormalDeadline and returns a ready Controller (spec
// §4.9 boot sequence: "arm the watchdog").
func New(timer Timer) *Controller {
	timer.Arm(NormalDeadline)
	return &Controller{timer: timer}
}

// FeedOnce feeds the watchdog; call once per control loop iteration.
// After ForceReboot it no longer feeds.
func (c *Controller) FeedOnce() {
	if c.rebooting {
		return
	}
	c.timer.Feed()
}

// ForceReboot re-arms the watchdog to ForceRebootDeadline and stops
// feeding it, guaranteeing a reboot within milliseconds (spec §4.9:
// modem-offline diagnosis path). Every later FeedOnce is a no-op.
func (c *Controller) ForceReboot() {
	c.rebooting = true
	c.timer.Arm(ForceRebootDeadline)
}

// ResetInput tracks the local reset-to-defaults input's debounce and
// cooldown state (spec §4.9, §3 "Input scan state" extended with the
// dedicated reset pin).
type ResetInput struct {
	assertedSince time.Time
	asserting     bool
	fired         bool
	cooldownUntil time.Time
}

// Observe reports whether the reset-to-defaults action should fire this
// instant, given whether the pin currently reads asserted (electrically
// low, same negative-logic convention as the contact inputs) and the
// current time. It is edge- and level-aware: the action fires exactly
// once per qualifying assertion, after ResetDebounce has elapsed, and
// never again until ResetCooldown has passed.
func (r *ResetInput) Observe(assertedLow bool, now time.Time) bool {
	if !assertedLow {
		r.asserting = false
		r.fired = false
		return false
	}

	if !r.asserting {
		r.asserting = true
		r.assertedSince = now
	}

	if r.fired || now.Before(r.cooldownUntil) {
		return false
	}

	if now.Sub(r.assertedSince) < ResetDebounce {
		return false
	}

	// Fire once, then start the cooldown and require the pin to be
	// released before firing again on the same continuous assertion.
	r.cooldownUntil = now.Add(ResetCooldown)
	r.fired = true
	return true
}
