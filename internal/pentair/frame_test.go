package pentair

import (
	"bytes"
	"errors"
	"testing"

	"poolpump/internal/pump"
)

func TestFrameRoundTrip(t *testing.T) {
	raw := encodeFrame(0x60, cmdReadRegister, []byte{0x02, 0xC4})

	f, err := readFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if f.dst != 0x60 || f.src != addrBridge || f.cmd != cmdReadRegister {
		t.Fatalf("unexpected frame header: %+v", f)
	}
	if !bytes.Equal(f.payload, []byte{0x02, 0xC4}) {
		t.Fatalf("payload = % X", f.payload)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	raw := encodeFrame(0x60, cmdStatus, nil)
	f, err := readFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if len(f.payload) != 0 {
		t.Fatalf("payload = % X, want empty", f.payload)
	}
}

func TestFrameChecksumMismatch(t *testing.T) {
	raw := encodeFrame(0x60, cmdStatus, []byte{0x01})
	raw[len(raw)-1] ^= 0xFF

	if _, err := readFrame(bytes.NewReader(raw)); !errors.Is(err, errBadChecksum) {
		t.Fatalf("expected errBadChecksum, got %v", err)
	}
}

func TestFrameScanSkipsLineNoise(t *testing.T) {
	noise := []byte{0x00, 0x13, 0x37, 0xFF, 0x00}
	raw := append(noise, encodeFrame(0x60, cmdPower, []byte{0x0A})...)

	f, err := readFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if f.cmd != cmdPower || !bytes.Equal(f.payload, []byte{0x0A}) {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestFrameScanGivesUp(t *testing.T) {
	junk := bytes.Repeat([]byte{0x00}, 80)
	if _, err := readFrame(bytes.NewReader(junk)); !errors.Is(err, errNoStartFound) {
		t.Fatalf("expected errNoStartFound, got %v", err)
	}
}

func TestFrameTruncated(t *testing.T) {
	raw := encodeFrame(0x60, cmdStatus, []byte{0x01, 0x02, 0x03})
	if _, err := readFrame(bytes.NewReader(raw[:len(raw)-4])); !errors.Is(err, errShortFrame) {
		t.Fatalf("expected errShortFrame, got %v", err)
	}
}

func TestRegisterFor(t *testing.T) {
	reg, err := registerFor(pump.FieldTargetRPM)
	if err != nil {
		t.Fatalf("registerFor: %v", err)
	}
	if reg != 0x02C4 {
		t.Fatalf("speed register = 0x%04X, want 0x02C4", reg)
	}

	// Slot 2's mode register sits one stride past slot 1's base.
	reg, err = registerFor(pump.ProgramField(2, pump.ProgramMode))
	if err != nil {
		t.Fatalf("registerFor: %v", err)
	}
	if want := programRegisterBase + programRegisterStride + 1; reg != want {
		t.Fatalf("program register = 0x%04X, want 0x%04X", reg, want)
	}

	if _, err := registerFor(pump.Field(0xFFFF)); err == nil {
		t.Fatalf("unmapped field must be rejected")
	}
}
