// Package stage implements the Multi-Stage Sequencer (spec §4.4): the
// state machine that drives actions spanning several AT/SMS round-trips
// to completion.
//
// Design note #2 asks for "an explicit enum of action states, each
// variant carrying only the data it needs ... eliminating the sentinel
// 0". Machine is that state: a Kind tag plus the one string every
// variant actually needs (the staged SMS reply), stepped through by a
// small internal Step enum rather than the firmware's parallel
// pending_action_kind + per-kind string array.
package stage

import (
	"fmt"
	"strings"
)

// Kind identifies which user-visible multi-stage action is in flight
// (spec §4.4 table). KindNone means the sequencer is idle.
type Kind int

const (
	KindNone Kind = iota
	KindSignalRequest
	KindTelNo
	KindPW
	KindPinAction
	KindMsg
	KindDefaults
	KindInvalidCommand
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindSignalRequest:
		return "SIGNAL_REQUEST"
	case KindTelNo:
		return "TEL_NO"
	case KindPW:
		return "PW"
	case KindPinAction:
		return "PIN_ACTION"
	case KindMsg:
		return "MSG"
	case KindDefaults:
		return "DEFAULTS"
	case KindInvalidCommand:
		return "INVALID_COMMAND"
	case KindStatus:
		return "STATUS"
	default:
		return "INVALID"
	}
}

type step int

const (
	stepIdle step = iota
	stepAwaitOKThenQuery // SIGNAL_REQUEST only: next OK triggers AT+CSQ
	stepAwaitCSQ         // SIGNAL_REQUEST only: awaiting +CSQ
	stepAwaitOKThenSend  // next OK triggers sending the staged SMS
	stepAwaitCMGS        // awaiting +CMGS after the SMS body was sent
	stepAwaitFinalOK     // awaiting the OK that completes CMGS
)

// Machine is the single pending multi-stage action slot (spec §3: "Only
// one multi-stage action is pending at any time"). The zero value is
// idle and ready to use.
type Machine struct {
	kind  Kind
	step  step
	reply string
}

// Pending reports whether an action is in flight (spec invariant: "The
// multi-stage slot is non-idle only when busy").
func (m *Machine) Pending() bool { return m.kind != KindNone }

// Kind returns the action currently in flight, or KindNone when idle.
func (m *Machine) Kind() Kind { return m.kind }

// StartSignalRequest begins the SIGNAL_REQUEST script: the first step
// waits for the OK that completes the CMGR read, then issues AT+CSQ.
func (m *Machine) StartSignalRequest() {
	*m = Machine{kind: KindSignalRequest, step: stepAwaitOKThenQuery}
}

// StartReply begins any of the generic single-reply scripts (TEL_NO,
// PW, PIN_ACTION, MSG, DEFAULTS, INVALID_COMMAND): stage reply, wait for
// the OK that completes CMGR, then send reply as SMS.
func (m *Machine) StartReply(kind Kind, reply string) {
	if kind == KindSignalRequest || kind == KindStatus {
		panic(fmt.Sprintf("stage: StartReply called with %v, use its dedicated starter", kind))
	}
	*m = Machine{kind: kind, step: stepAwaitOKThenSend, reply: reply}
}

// StartStatus begins the STATUS script from the periodic health probe:
// the +CPSI line already arrived and contained "Online", the reply is
// already staged, and the sequencer now waits for the OK that completes
// the AT+CPSI? command before sending it.
func (m *Machine) StartStatus(reply string) {
	*m = Machine{kind: KindStatus, step: stepAwaitOKThenSend, reply: reply}
}

// Abandon drops any pending action, used when the awaited CMGR times out
// (spec §4.3: "if the timed-out kind is CMGR the multi-stage action slot
// is also cleared").
func (m *Machine) Abandon() {
	*m = Machine{}
}

// OKResult describes what the sequencer wants done in reaction to an
// arrived OK.
type OKResult struct {
	// NextCommand is a bare AT command (no AT prefix/CR) to dispatch.
	// The only one the sequencer issues is "+CSQ" (SIGNAL_REQUEST), whose
	// reply the caller awaits as +CSQ. Empty if nothing needs dispatching.
	NextCommand string
	// SendReply is true when the staged reply should now be sent as an
	// SMS, awaiting +CMGS.
	SendReply bool
	// Done is true when the action has fully completed and the slot is
	// now idle again.
	Done bool
}

// OnOK advances the machine in reaction to an OK arrival. handled is
// false if no pending action cared about this OK (the sequencer should
// do nothing further with it).
func (m *Machine) OnOK() (result OKResult, handled bool) {
	switch m.step {
	case stepAwaitOKThenQuery:
		m.step = stepAwaitCSQ
		return OKResult{NextCommand: "+CSQ"}, true
	case stepAwaitOKThenSend:
		m.step = stepAwaitCMGS
		return OKResult{SendReply: true}, true
	case stepAwaitFinalOK:
		kind := m.kind
		*m = Machine{}
		return OKResult{Done: true}, kind != KindNone
	default:
		return OKResult{}, false
	}
}

// OnCSQ reacts to the arrival of a +CSQ line while SIGNAL_REQUEST is
// waiting for it. It stages "Signal quality is <value>" and advances to
// waiting for the OK that completes the CSQ command. value is the raw
// signal-quality number reported by the modem (the first field of
// "+CSQ: <value>,<ber>").
func (m *Machine) OnCSQ(value string) (handled bool) {
	if m.kind != KindSignalRequest || m.step != stepAwaitCSQ {
		return false
	}
	m.reply = "Signal quality is " + value
	m.step = stepAwaitOKThenSend
	return true
}

// OnCMGS reacts to the arrival of +CMGS after the staged reply was sent,
// advancing to wait for the final OK.
func (m *Machine) OnCMGS() (handled bool) {
	if m.step != stepAwaitCMGS {
		return false
	}
	m.step = stepAwaitFinalOK
	return true
}

// Reply returns the currently staged outbound SMS body.
func (m *Machine) Reply() string { return m.reply }

// ParseCSQValue extracts the signal-quality field from a +CSQ line, e.g.
// "+CSQ: 17,99" -> "17".
func ParseCSQValue(line string) string {
	rest := strings.TrimPrefix(line, "+CSQ:")
	rest = strings.TrimSpace(rest)
	if i := strings.IndexByte(rest, ','); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// ParseCPSIBody extracts the portion of a +CPSI line used to build the
// "Modem check: <rest>" status reply (spec §4.4).
func ParseCPSIBody(line string) string {
	rest := strings.TrimPrefix(line, "+CPSI:")
	return strings.TrimSpace(rest)
}
