package watchdog

import (
	"testing"
	"time"
)

type fakeTimer struct {
	armed time.Duration
	fed   int
}

func (f *fakeTimer) Arm(d time.Duration) { f.armed = d }
func (f *fakeTimer) Feed()               { f.fed++ }

func TestNewArmsNormalDeadline(t *testing.T) {
	timer := &fakeTimer{}
	New(timer)
	if timer.armed != NormalDeadline {
		t.Fatalf("expected armed %v, got %v", NormalDeadline, timer.armed)
	}
}

func TestForceRebootArmsShortDeadline(t *testing.T) {
	timer := &fakeTimer{}
	c := New(timer)
	c.ForceReboot()
	if timer.armed != ForceRebootDeadline {
		t.Fatalf("expected armed %v, got %v", ForceRebootDeadline, timer.armed)
	}
}

func TestResetInputRequiresDebounce(t *testing.T) {
	var r ResetInput
	t0 := time.Now()
	if r.Observe(true, t0) {
		t.Fatal("should not fire immediately on assertion")
	}
	if r.Observe(true, t0.Add(500*time.Millisecond)) {
		t.Fatal("should not fire before debounce elapses")
	}
	if !r.Observe(true, t0.Add(1100*time.Millisecond)) {
		t.Fatal("should fire once debounce has elapsed")
	}
}

func TestResetInputCooldownSuppressesSecondPress(t *testing.T) {
	var r ResetInput
	t0 := time.Now()
	r.Observe(true, t0)
	if !r.Observe(true, t0.Add(1100*time.Millisecond)) {
		t.Fatal("first qualifying press should fire")
	}

	// Release and re-press quickly - within cooldown.
	r.Observe(false, t0.Add(1200*time.Millisecond))
	r.Observe(true, t0.Add(1300*time.Millisecond))
	if r.Observe(true, t0.Add(2500*time.Millisecond)) {
		t.Fatal("second press within 10s cooldown should not fire")
	}
}

func TestResetInputReleaseBeforeDebounceDoesNotFire(t *testing.T) {
	var r ResetInput
	t0 := time.Now()
	r.Observe(true, t0)
	r.Observe(false, t0.Add(500*time.Millisecond)) // released early
	if r.Observe(true, t0.Add(1100*time.Millisecond)) {
		t.Fatal("a fresh assertion should restart its own debounce window")
	}
}
