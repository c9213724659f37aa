// Package at provides parsing and classification of AT command modem
// responses for the alarm dialler's control core.
//
// The modem is driven in "No Echo" text mode (ATE0, AT+CMGF=1). Responses
// arrive as CRLF-terminated lines. This package classifies each line into
// one of a closed set of Kinds so that the dialogue state machine
// (package dialogue) and the multi-stage sequencer (package stage) never
// have to parse raw strings themselves.
package at

import (
	"strconv"
	"strings"
)

const (
	// CR and LF delimit modem lines. A line is framed by the receiving
	// ring buffer on LF; CR is stripped during classification.
	CR = '\r'
	LF = '\n'

	// Prompt is the SMS text-entry prompt the modem emits after AT+CMGS.
	Prompt = ">"

	// CtrlZ terminates an SMS body being typed at the prompt.
	CtrlZ = "\x1A"

	// MaxLineLength bounds a single classified line (spec §4.2).
	MaxLineLength = 200
)

// Kind is the closed vocabulary of response kinds the control core can
// await. It is the tagged-variant replacement for the firmware's
// parallel received[]/awaiting[]/initiated_at[] arrays (design note #2).
type Kind int

const (
	// None is returned for lines that carry no classification (a lone
	// prompt, an empty line) and is never awaited.
	None Kind = iota
	OK
	ERROR
	CPSI
	CREG
	CPMS
	CSQ
	CMGD
	CMGS
	CMTI
	CMGR
	CLCC
	UnknownPlus
	// Payload marks a free-form line, used only while CMGR is awaited,
	// where it carries the SMS body (spec §4.2).
	Payload
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case OK:
		return "OK"
	case ERROR:
		return "ERROR"
	case CPSI:
		return "+CPSI"
	case CREG:
		return "+CREG"
	case CPMS:
		return "+CPMS"
	case CSQ:
		return "+CSQ"
	case CMGD:
		return "+CMGD"
	case CMGS:
		return "+CMGS"
	case CMTI:
		return "+CMTI"
	case CMGR:
		return "+CMGR"
	case CLCC:
		return "+CLCC"
	case UnknownPlus:
		return "+UNKNOWN"
	case Payload:
		return "PAYLOAD"
	default:
		return "INVALID"
	}
}

// prefixKinds is checked in order against a line beginning with '+'.
var prefixKinds = []struct {
	prefix string
	kind   Kind
}{
	{"+CPSI", CPSI},
	{"+CREG", CREG},
	{"+CPMS", CPMS},
	{"+CSQ", CSQ},
	{"+CMGD", CMGD},
	{"+CMGS", CMGS},
	{"+CMTI", CMTI},
	{"+CMGR", CMGR},
	{"+CLCC", CLCC},
}

// Classify implements the Message Classifier (spec §4.2). line must
// already have CR/LF stripped. It returns the classified Kind and, for
// every kind except None, the full line verbatim (the "per-kind response
// slot" of the spec, returned here rather than written to a global so the
// caller owns where it's stored).
func Classify(line string) (Kind, string) {
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}

	switch line {
	case "", Prompt:
		return None, ""
	case "OK":
		return OK, line
	case "ERROR":
		return ERROR, line
	}

	if line[0] != '+' {
		return Payload, line
	}

	for _, pk := range prefixKinds {
		if strings.HasPrefix(line, pk.prefix) {
			return pk.kind, line
		}
	}
	return UnknownPlus, line
}

// StripTerminators removes a trailing CR and/or LF from a raw ring-buffer
// line, matching the Line Receiver's framing contract (spec §4.2: "Strips
// CR and LF, caps line length ... zero-terminates").
func StripTerminators(raw []byte) string {
	n := len(raw)
	for n > 0 && (raw[n-1] == CR || raw[n-1] == LF) {
		n--
	}
	if n > MaxLineLength {
		n = MaxLineLength
	}
	return string(raw[:n])
}

// CMTIIndex parses the SMS storage index out of a +CMTI line, e.g.
// `+CMTI: "SM",7` -> 7. Per design note Open Question #3, the index is
// parsed after the final comma rather than at a fixed byte offset, which
// is robust to the storage-name field varying in length ("SM" vs "ME").
func CMTIIndex(line string) (int, bool) {
	i := strings.LastIndexByte(line, ',')
	if i < 0 || i+1 >= len(line) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
	if err != nil {
		return 0, false
	}
	return n, true
}
