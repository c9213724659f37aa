package smscmd

import (
	"testing"

	"github.com/urathe/AlarmDial/config"
	"github.com/urathe/AlarmDial/stage"
)

func TestWrongPasswordIsSilentlyIgnored(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	res := p.Parse("wrongpw Signal?", &rec)
	if res.Action != stage.KindNone {
		t.Fatalf("expected no action for wrong password, got %v", res.Action)
	}
	if res.ConfigDirty {
		t.Fatal("wrong password must never mark config dirty")
	}
}

func TestSignalQuery(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	res := p.Parse(rec.Password+" Signal?", &rec)
	if res.Action != stage.KindSignalRequest {
		t.Fatalf("expected SIGNAL_REQUEST, got %v", res.Action)
	}
}

func TestPasswordChangeThenOldPasswordRejected(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()

	res := p.Parse(rec.Password+" Password!abcdef", &rec)
	if res.Action != stage.KindPW || res.Reply != "Ok. Changed password" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if rec.Password != "abcdef" {
		t.Fatalf("password not updated: %q", rec.Password)
	}

	// Old password now silently ignored.
	res = p.Parse(config.DefaultPassword+" Signal?", &rec)
	if res.Action != stage.KindNone {
		t.Fatalf("expected old password to be rejected, got %v", res.Action)
	}

	// New password accepted.
	res = p.Parse("abcdef Signal?", &rec)
	if res.Action != stage.KindSignalRequest {
		t.Fatalf("expected new password accepted, got %v", res.Action)
	}
}

func TestPasswordWrongLengthRejectedAndUnchanged(t *testing.T) {
	cases := []string{"abcde", "abcdefg"}
	for _, bad := range cases {
		rec := config.Defaults()
		p := NewParser()
		res := p.Parse(rec.Password+" Password!"+bad, &rec)
		if res.Reply != "Error. Invalid password (needs to be 6 characters)" {
			t.Errorf("arg %q: unexpected reply %q", bad, res.Reply)
		}
		if rec.Password != config.DefaultPassword {
			t.Errorf("arg %q: password should be unchanged, got %q", bad, rec.Password)
		}
	}
}

func TestTelephoneNumberChange(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	res := p.Parse(rec.Password+" TelephoneNumber!+15551234567", &rec)
	if res.Reply != "Ok. Changed telephone number" || !res.ConfigDirty {
		t.Fatalf("unexpected result: %+v", res)
	}
	if rec.DestinationNumber != "+15551234567" {
		t.Fatalf("number not updated: %q", rec.DestinationNumber)
	}
}

func TestSMSonInputTogglesAndRestoresOnSecondCall(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	before := rec.Inputs[0].NotifyEnabled

	p.Parse(rec.Password+" SMSonInput!1", &rec)
	if rec.Inputs[0].NotifyEnabled == before {
		t.Fatal("expected first toggle to flip notify_enabled")
	}

	p.Parse(rec.Password+" SMSonInput!1", &rec)
	if rec.Inputs[0].NotifyEnabled != before {
		t.Fatal("expected second toggle to restore prior setting")
	}
}

func TestSMSonInputOutOfRange(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	res := p.Parse(rec.Password+" SMSonInput!0", &rec)
	if res.Reply != "Error. Invalid input number" {
		t.Fatalf("expected out-of-range error, got %+v", res)
	}
	res = p.Parse(rec.Password+" SMSonInput!4", &rec)
	if res.Reply != "Error. Invalid input number" {
		t.Fatalf("expected out-of-range error, got %+v", res)
	}
}

func TestMessageTextTruncatesTo49Chars(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	long := ""
	for i := 0; i < 80; i++ {
		long += "x"
	}
	p.Parse(rec.Password+" MessageText!2!On!"+long, &rec)
	if len(rec.Inputs[1].MessageOnActivate) != config.MaxMessageLen {
		t.Fatalf("expected truncation to %d, got %d", config.MaxMessageLen, len(rec.Inputs[1].MessageOnActivate))
	}
}

func TestDefaultsIsIdempotent(t *testing.T) {
	rec := config.Defaults()
	rec.Password = "abcdef"
	p := NewParser()

	res1 := p.Parse("abcdef Defaults!", &rec)
	first := rec
	res2 := p.Parse(config.DefaultPassword+" Defaults!", &rec)

	if res1.Reply != "Ok. Resetting settings to defaults" || res2.Reply != "Ok. Resetting settings to defaults" {
		t.Fatalf("unexpected replies: %q, %q", res1.Reply, res2.Reply)
	}
	if first != rec {
		t.Fatal("Defaults! should be idempotent")
	}
}

func TestUnknownVerbStagesInvalidInstruction(t *testing.T) {
	rec := config.Defaults()
	p := NewParser()
	res := p.Parse(rec.Password+" Frobnicate!", &rec)
	if res.Action != stage.KindInvalidCommand || res.Reply != "Invalid instruction" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUKLandlineValidatorRejectsNonUKNumbers(t *testing.T) {
	v := UKLandlineValidator{}
	if v.Valid("+15551234567") {
		t.Fatal("expected non-UK number to be rejected")
	}
	if !v.Valid("+441234567890"[:12]) { // "+44" + 9 digits
		t.Fatal("expected well-formed UK number to validate")
	}
}
