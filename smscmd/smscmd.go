// Package smscmd implements the SMS Command Parser (spec §4.6): it
// validates the password prefix, dispatches one of the fixed command
// vocabulary, mutates the configuration, and stages a reply.
//
// Design note #4 prefers parsing the body as "<password> <verb>[!arg...]"
// and matching the verb against a static table over the firmware's
// approach of concatenating the live password to a literal verb string;
// that is exactly what Parse below does.
package smscmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urathe/AlarmDial/config"
	"github.com/urathe/AlarmDial/stage"
)

// NumberValidator is the pluggable hook for destination-number format
// checking (design note Open Question #1: "a commented-out number-format
// validation for UK numbers ... a pluggable validator with a default of
// 'accept all'").
type NumberValidator interface {
	Valid(number string) bool
}

// AcceptAllValidator is the default NumberValidator: every number is
// accepted, matching the spec's literal behaviour.
type AcceptAllValidator struct{}

// Valid always returns true.
func (AcceptAllValidator) Valid(string) bool { return true }

// UKLandlineValidator is provided as a demonstration of the validator
// hook but is not installed by default (spec: "a design hook left
// disabled by default"). It requires UK numbers in international
// format: a leading "+44" followed by nine digits.
type UKLandlineValidator struct{}

// Valid reports whether number looks like a UK number in international
// format.
func (UKLandlineValidator) Valid(number string) bool {
	if !strings.HasPrefix(number, "+44") {
		return false
	}
	digits := number[3:]
	if len(digits) != 9 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Result is the outcome of parsing and applying one SMS command: the
// multi-stage action to start (stage.KindNone if the password prefix
// didn't match, in which case the message is silently discarded per
// spec §4.6) and whether the configuration was mutated and needs
// persisting.
type Result struct {
	Action       stage.Kind
	Reply        string
	ConfigDirty  bool
}

// Parser applies incoming SMS command bodies against a Record.
type Parser struct {
	Validator NumberValidator
}

// NewParser returns a Parser with the default AcceptAllValidator.
func NewParser() *Parser {
	return &Parser{Validator: AcceptAllValidator{}}
}

// Parse validates the password prefix of body against rec.Password and,
// if it matches, dispatches the verb. rec is mutated in place when a
// command succeeds. If the password prefix does not match, Parse
// returns a zero Result (Action == stage.KindNone) and the message is
// to be silently discarded (spec §4.6, §7).
func (p *Parser) Parse(body string, rec *config.Record) Result {
	prefix := rec.Password + " "
	if !strings.HasPrefix(body, prefix) {
		return Result{}
	}
	rest := body[len(prefix):]

	verb, arg, hasArg := strings.Cut(rest, "!")
	if !hasArg {
		verb = rest
	}

	switch {
	case verb == "Signal?":
		return Result{Action: stage.KindSignalRequest}

	case strings.HasPrefix(rest, "TelephoneNumber!"):
		return p.telephoneNumber(arg, rec)

	case strings.HasPrefix(rest, "Password!"):
		return p.password(arg, rec)

	case strings.HasPrefix(rest, "SMSonInput!"):
		return p.smsOnInput(arg, rec)

	case strings.HasPrefix(rest, "MessageText!"):
		return p.messageText(arg, rec)

	case verb == "Defaults":
		*rec = config.Defaults()
		return Result{
			Action:      stage.KindDefaults,
			Reply:       "Ok. Resetting settings to defaults",
			ConfigDirty: true,
		}

	default:
		return Result{Action: stage.KindInvalidCommand, Reply: "Invalid instruction"}
	}
}

func (p *Parser) telephoneNumber(arg string, rec *config.Record) Result {
	number := truncate(arg, config.MaxNumberLen)
	if !p.Validator.Valid(number) {
		return Result{Action: stage.KindTelNo, Reply: "Error. Invalid telephone number"}
	}
	rec.DestinationNumber = number
	return Result{
		Action:      stage.KindTelNo,
		Reply:       "Ok. Changed telephone number",
		ConfigDirty: true,
	}
}

func (p *Parser) password(arg string, rec *config.Record) Result {
	if len(arg) != config.PasswordLen {
		return Result{
			Action: stage.KindPW,
			Reply:  "Error. Invalid password (needs to be 6 characters)",
		}
	}
	rec.Password = arg
	return Result{Action: stage.KindPW, Reply: "Ok. Changed password", ConfigDirty: true}
}

func (p *Parser) smsOnInput(arg string, rec *config.Record) Result {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > config.NumInputs {
		return Result{Action: stage.KindPinAction, Reply: "Error. Invalid input number"}
	}
	i := idx - 1
	rec.Inputs[i].NotifyEnabled = !rec.Inputs[i].NotifyEnabled

	state := "will trigger SMS from now on"
	if !rec.Inputs[i].NotifyEnabled {
		state = "will not trigger SMS from now on"
	}
	return Result{
		Action:      stage.KindPinAction,
		Reply:       fmt.Sprintf("Ok. Input %d %s", idx, state),
		ConfigDirty: true,
	}
}

func (p *Parser) messageText(arg string, rec *config.Record) Result {
	digitStr, remainder, ok := strings.Cut(arg, "!")
	if !ok {
		return Result{Action: stage.KindMsg, Reply: "Error. Malformed MessageText command"}
	}
	edge, text, ok := strings.Cut(remainder, "!")
	if !ok {
		return Result{Action: stage.KindMsg, Reply: "Error. Malformed MessageText command"}
	}

	idx, err := strconv.Atoi(digitStr)
	if err != nil || idx < 1 || idx > config.NumInputs {
		return Result{Action: stage.KindMsg, Reply: "Error. Invalid input number"}
	}
	i := idx - 1
	text = truncate(text, config.MaxMessageLen)

	switch edge {
	case "On":
		rec.Inputs[i].MessageOnActivate = text
	case "Off":
		rec.Inputs[i].MessageOnDeactivate = text
	default:
		return Result{Action: stage.KindMsg, Reply: "Error. Expected On or Off"}
	}

	return Result{
		Action:      stage.KindMsg,
		Reply:       fmt.Sprintf("Ok. Changed message for input %d", idx),
		ConfigDirty: true,
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
