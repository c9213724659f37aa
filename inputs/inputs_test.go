package inputs

import (
	"testing"

	"github.com/urathe/AlarmDial/config"
)

type fakeReader struct {
	high [config.NumInputs]bool
}

func (f fakeReader) Read(pin int) (bool, error) {
	return f.high[pin], nil
}

func TestFirstScanEstablishesBaselineWithoutTransitions(t *testing.T) {
	s := NewScanner()
	r := fakeReader{high: [config.NumInputs]bool{true, true, true}}
	changed, err := s.Scan(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Fatalf("expected no transitions on first scan, got %v", changed)
	}
}

func TestTransitionDetectedOnNegativeLogic(t *testing.T) {
	s := NewScanner()
	r := fakeReader{high: [config.NumInputs]bool{true, true, true}}
	s.Scan(r)

	r.high[0] = false // electrically low -> activated
	changed, err := s.Scan(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || changed[0].Pin != 0 || !changed[0].Activated {
		t.Fatalf("expected pin 0 activated, got %v", changed)
	}
}

func TestMultiplePinsCanChangeInOneTick(t *testing.T) {
	s := NewScanner()
	r := fakeReader{high: [config.NumInputs]bool{true, true, true}}
	s.Scan(r)

	r.high[0] = false
	r.high[2] = false
	changed, _ := s.Scan(r)
	if len(changed) != 2 {
		t.Fatalf("expected 2 transitions, got %d: %v", len(changed), changed)
	}
}

func TestMessageForSelectsActivateOrDeactivate(t *testing.T) {
	per := config.PerInput{MessageOnActivate: "on", MessageOnDeactivate: "off"}
	if got := MessageFor(Transition{Activated: true}, per); got != "on" {
		t.Errorf("got %q", got)
	}
	if got := MessageFor(Transition{Activated: false}, per); got != "off" {
		t.Errorf("got %q", got)
	}
}
