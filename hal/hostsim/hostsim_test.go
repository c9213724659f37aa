package hostsim

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/urathe/AlarmDial/config"
)

func TestLoopbackTransportRoundTrip(t *testing.T) {
	tr := NewLoopbackTransport()
	tr.SendLine("+CPSI: Online\r\n")

	buf := make([]byte, 64)
	n, err := tr.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := string(buf[:n]); got != "+CPSI: Online\r\n" {
		t.Fatalf("got %q", got)
	}

	if _, err := tr.Write([]byte("AT\r")); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestLoopbackTransportCloseUnblocksRead(t *testing.T) {
	tr := NewLoopbackTransport()
	done := make(chan struct{})
	go func() {
		buf := make([]byte, 8)
		if _, err := tr.Read(buf); err == nil {
			t.Error("expected error after close")
		}
		close(done)
	}()
	tr.Close()
	<-done
}

func TestLoopbackDialerRespectsContext(t *testing.T) {
	d := NewLoopbackDialer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Dial(ctx); err == nil {
		t.Fatal("expected error from a canceled context")
	}
}

func TestMemoryPinsDefaultHigh(t *testing.T) {
	p := NewMemoryPins()
	high, err := p.Read(0)
	if err != nil || !high {
		t.Fatalf("expected default high, got %v, %v", high, err)
	}
	p.Set(0, false)
	high, _ = p.Read(0)
	if high {
		t.Fatal("expected low after Set(false)")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "config.bin"))

	raw, err := s.ReadRecord()
	if err != nil {
		t.Fatalf("ReadRecord on missing file: %v", err)
	}
	if _, ok := config.Deserialize(raw); ok {
		t.Fatal("expected a missing file to deserialize as invalid")
	}

	rec := config.Defaults()
	if err := s.WriteRecord(config.Serialize(rec)); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	raw, err = s.ReadRecord()
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	got, ok := config.Deserialize(raw)
	if !ok {
		t.Fatal("expected valid checksum after round trip")
	}
	if got.Password != rec.Password {
		t.Fatalf("got password %q, want %q", got.Password, rec.Password)
	}
}
