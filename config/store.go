package config

// Store is the named interface to the reserved flash sector (spec §1:
// "low-level serial driver bring-up, GPIO ... " and the flash
// controller are out of scope, "treated as external collaborators with
// named interfaces only"). A real microcontroller target backs Store
// with its flash driver; hal/hostsim provides a file-backed
// implementation for development and testing.
type Store interface {
	// ReadRecord returns the current RecordLen bytes at the reserved
	// offset. Implementations need not validate the checksum; that is
	// Deserialize's job.
	ReadRecord() ([RecordLen]byte, error)

	// WriteRecord erases the reserved sector and programs raw in its
	// place. Spec §4.7: "the erase-then-program pair must be atomic
	// with respect to the UART ISR" — callers are expected to perform
	// the call inside the hal.CriticalSection that excludes the UART
	// reader, not Store itself, since on real hardware the atomicity
	// requirement is about the interrupt controller, not the flash
	// peripheral.
	WriteRecord(raw [RecordLen]byte) error
}

// Load reads and validates the persisted record. On a checksum mismatch
// (including an unwritten/blank sector) it returns the factory defaults
// and dirty=true so the caller rewrites a valid record at the first
// opportunity (spec §4.7, §7, and the boot invariant in §8).
func Load(s Store) (rec Record, dirty bool, err error) {
	raw, err := s.ReadRecord()
	if err != nil {
		return Record{}, false, err
	}
	if rec, ok := Deserialize(raw); ok {
		return rec, false, nil
	}
	return Defaults(), true, nil
}

// Persist serialises rec and writes it to s. Callers must only invoke
// Persist while the dialogue is idle (spec §4.7: "On config_dirty &&
// !busy") and from inside the flash critical section.
func Persist(s Store, rec Record) error {
	return s.WriteRecord(Serialize(rec))
}
