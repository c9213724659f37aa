package config

import "testing"

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	r := Defaults()
	r.Inputs[1].NotifyEnabled = false
	r.Inputs[2].MessageOnActivate = "Custom activate message"

	raw := Serialize(r)
	got, ok := Deserialize(raw)
	if !ok {
		t.Fatal("Deserialize reported invalid checksum on freshly serialized record")
	}
	if got != r {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, r)
	}
}

func TestChecksumInvariant(t *testing.T) {
	raw := Serialize(Defaults())
	var sum byte
	for _, b := range raw[1:] {
		sum += b
	}
	if raw[0] != sum {
		t.Fatalf("checksum byte %d does not equal sum of remaining bytes %d", raw[0], sum)
	}
}

func TestDeserializeRejectsCorruptChecksum(t *testing.T) {
	raw := Serialize(Defaults())
	raw[0] ^= 0xFF // corrupt the checksum byte
	_, ok := Deserialize(raw)
	if ok {
		t.Fatal("expected Deserialize to reject a corrupted checksum")
	}
}

func TestDeserializeRejectsBlankFlash(t *testing.T) {
	// Erased flash reads 0xFF throughout: the payload sums to 1 mod 256,
	// which does not match the 0xFF checksum byte. (An all-zero sector,
	// by contrast, does checksum-validate.)
	var raw [RecordLen]byte
	for i := range raw {
		raw[i] = 0xFF
	}
	_, ok := Deserialize(raw)
	if ok {
		t.Fatal("expected Deserialize to reject an erased (all 0xFF) sector")
	}
}

func TestDefaultsAreIdempotent(t *testing.T) {
	a := Defaults()
	b := Defaults()
	if a != b {
		t.Fatal("Defaults() should be deterministic")
	}
}

func TestLongFieldsAreTruncatedOnSerialize(t *testing.T) {
	r := Defaults()
	long := ""
	for i := 0; i < MaxMessageLen+20; i++ {
		long += "x"
	}
	r.Inputs[0].MessageOnActivate = long

	raw := Serialize(r)
	got, ok := Deserialize(raw)
	if !ok {
		t.Fatal("expected valid checksum")
	}
	if len(got.Inputs[0].MessageOnActivate) != MaxMessageLen {
		t.Fatalf("expected truncation to %d chars, got %d", MaxMessageLen, len(got.Inputs[0].MessageOnActivate))
	}
}
