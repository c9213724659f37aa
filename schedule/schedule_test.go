package schedule

import (
	"testing"
	"time"
)

func TestCadenceDueImmediatelyThenAfterInterval(t *testing.T) {
	t0 := time.Now()
	c := NewCadence(time.Hour, t0)
	if !c.Due(t0) {
		t.Fatal("cadence should be due at creation time")
	}
	c.Fired(t0)
	if c.Due(t0.Add(30 * time.Minute)) {
		t.Fatal("cadence should not be due before interval elapses")
	}
	if !c.Due(t0.Add(time.Hour)) {
		t.Fatal("cadence should be due once interval elapses")
	}
}

func TestImmediatePolicyRebootsOnFirstOffline(t *testing.T) {
	var p ImmediatePolicy
	if !p.Offline() {
		t.Fatal("ImmediatePolicy should reboot on first offline reading")
	}
}

func TestConsecutivePolicyRequiresThreshold(t *testing.T) {
	p := &ConsecutivePolicy{Threshold: 3}
	if p.Offline() {
		t.Fatal("should not reboot after 1 offline reading")
	}
	if p.Offline() {
		t.Fatal("should not reboot after 2 offline readings")
	}
	if !p.Offline() {
		t.Fatal("should reboot after 3 offline readings")
	}
}

func TestConsecutivePolicyResetsOnOnline(t *testing.T) {
	p := &ConsecutivePolicy{Threshold: 2}
	p.Offline()
	p.Online()
	if p.Offline() {
		t.Fatal("streak should have reset after Online()")
	}
}
