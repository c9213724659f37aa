// Package config implements the Persistent Configuration record (spec
// §3, §4.7): the checksummed configuration serialised to a reserved
// flash sector, with safe defaults on checksum mismatch.
package config

import (
	"bytes"
	"errors"
)

const (
	// NumInputs is the compile-time-fixed number of contact inputs N
	// (spec §3: "default 3").
	NumInputs = 3

	// PasswordLen is the fixed width of the password field.
	PasswordLen = 6

	// MaxNumberLen bounds destination_number.
	MaxNumberLen = 49

	// MaxMessageLen bounds each per-input message.
	MaxMessageLen = 49

	// RecordLen is the fixed on-flash record size (spec §6).
	RecordLen = 1024
)

// ErrFieldTooLong reports a value that exceeds its field's maximum
// length. No function in this module returns it: Serialize truncates
// over-length fields, and the SMS command parser truncates text fields
// and rejects a password that is not exactly PasswordLen on its own.
var ErrFieldTooLong = errors.New("config: field exceeds its maximum length")

// PerInput holds one contact input's notification configuration.
type PerInput struct {
	NotifyEnabled        bool
	MessageOnActivate    string
	MessageOnDeactivate  string
}

// Record is the full runtime configuration (spec §3 "Configuration
// record").
type Record struct {
	Password          string
	DestinationNumber string
	Inputs            [NumInputs]PerInput
}

// defaultMessages gives each input a distinct default pair; spec.md
// references a table of per-input defaults in §8 that was not retained
// in the distillation available to this module (see DESIGN.md), so
// these names are chosen to read sensibly out of the box while leaving
// every field user-overridable via MessageText!.
var defaultMessages = [NumInputs][2]string{
	{"Input 1 activated", "Input 1 restored"},
	{"Input 2 activated", "Input 2 restored"},
	{"Input 3 activated", "Input 3 restored"},
}

// DefaultPassword and DefaultDestination are the factory defaults (spec
// §6).
const (
	DefaultPassword    = "674358"
	DefaultDestination = "+447700900000"
)

// Defaults returns the factory-default configuration (spec §6): password
// "674358", destination "+447700900000", all inputs notify-enabled.
func Defaults() Record {
	r := Record{
		Password:          DefaultPassword,
		DestinationNumber: DefaultDestination,
	}
	for i := range r.Inputs {
		r.Inputs[i] = PerInput{
			NotifyEnabled:       true,
			MessageOnActivate:   defaultMessages[i][0],
			MessageOnDeactivate: defaultMessages[i][1],
		}
	}
	return r
}

// Serialize encodes r into the fixed RecordLen-byte on-flash layout
// (spec §3): checksum byte, 6-byte NUL-terminated password (7 bytes),
// NUL-terminated destination number, N NUL-terminated activate messages,
// N NUL-terminated deactivate messages, N notify-enabled bytes, padded
// with zero bytes to RecordLen and checksummed over bytes [1:RecordLen).
func Serialize(r Record) [RecordLen]byte {
	var out [RecordLen]byte

	buf := new(bytes.Buffer)
	pw := r.Password
	if len(pw) > PasswordLen {
		pw = pw[:PasswordLen]
	}
	for len(pw) < PasswordLen {
		pw += "\x00"
	}
	buf.WriteString(pw)
	buf.WriteByte(0)

	buf.WriteString(truncate(r.DestinationNumber, MaxNumberLen))
	buf.WriteByte(0)

	for i := 0; i < NumInputs; i++ {
		buf.WriteString(truncate(r.Inputs[i].MessageOnActivate, MaxMessageLen))
		buf.WriteByte(0)
	}
	for i := 0; i < NumInputs; i++ {
		buf.WriteString(truncate(r.Inputs[i].MessageOnDeactivate, MaxMessageLen))
		buf.WriteByte(0)
	}
	for i := 0; i < NumInputs; i++ {
		if r.Inputs[i].NotifyEnabled {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}

	payload := buf.Bytes()
	copy(out[1:], payload) // remaining tail bytes stay zero (spec: "undefined but included in the checksum")
	out[0] = checksum(out[1:])
	return out
}

// Deserialize decodes raw (exactly RecordLen bytes) into a Record. It
// returns ok=false if the checksum does not validate, in which case the
// caller should fall back to Defaults() (spec §4.7, §7).
func Deserialize(raw [RecordLen]byte) (Record, bool) {
	if raw[0] != checksum(raw[1:]) {
		return Record{}, false
	}

	r := Record{}
	rest := raw[1:]

	pwEnd := bytes.IndexByte(rest, 0)
	if pwEnd < 0 {
		return Record{}, false
	}
	r.Password = string(bytes.TrimRight(rest[:pwEnd], "\x00"))
	rest = rest[pwEnd+1:]

	var ok bool
	r.DestinationNumber, rest, ok = readCString(rest)
	if !ok {
		return Record{}, false
	}

	var activate, deactivate [NumInputs]string
	for i := 0; i < NumInputs; i++ {
		activate[i], rest, ok = readCString(rest)
		if !ok {
			return Record{}, false
		}
	}
	for i := 0; i < NumInputs; i++ {
		deactivate[i], rest, ok = readCString(rest)
		if !ok {
			return Record{}, false
		}
	}
	if len(rest) < NumInputs {
		return Record{}, false
	}
	for i := 0; i < NumInputs; i++ {
		r.Inputs[i] = PerInput{
			NotifyEnabled:       rest[i] != 0,
			MessageOnActivate:   activate[i],
			MessageOnDeactivate: deactivate[i],
		}
	}

	return r, true
}

func readCString(b []byte) (string, []byte, bool) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", nil, false
	}
	return string(b[:i]), b[i+1:], true
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// checksum is the 8-bit sum (mod 256) of b (spec §3 invariant).
func checksum(b []byte) byte {
	var sum byte
	for _, c := range b {
		sum += c
	}
	return sum
}
