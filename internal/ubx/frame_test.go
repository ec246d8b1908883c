package ubx

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
)

// refChecksum is the alternative Fletcher formulation: accumulate in
// unbounded integers and reduce modulo 256 only at the end. Both must
// agree for every input because modular reduction distributes over
// addition.
func refChecksum(data []byte) (byte, byte) {
	a, b := 0, 0
	for _, c := range data {
		a += int(c)
		b += a
	}
	return byte(a % 256), byte(b % 256)
}

func TestChecksum_MatchesUnboundedFormulation(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0xFF},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0x06, 0x24, 0x00, 0x00},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		buf := make([]byte, rng.Intn(512))
		rng.Read(buf)
		cases = append(cases, buf)
	}
	for _, c := range cases {
		gotA, gotB := Checksum(c)
		wantA, wantB := refChecksum(c)
		if gotA != wantA || gotB != wantB {
			t.Fatalf("checksum mismatch for %d bytes: got (%02X,%02X) want (%02X,%02X)",
				len(c), gotA, gotB, wantA, wantB)
		}
	}
}

func TestChecksum_KnownVector(t *testing.T) {
	// CFG-NAV5 poll: class 06, id 24, zero-length payload.
	a, b := Checksum([]byte{0x06, 0x24, 0x00, 0x00})
	if a != 0x2A || b != 0x84 {
		t.Fatalf("got (%02X,%02X), want (2A,84)", a, b)
	}
}

func TestAssemble_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	sizes := []int{0, 1, 2, 3, 35, 36, 255, 256, 1024}
	for _, n := range sizes {
		payload := make([]byte, n)
		rng.Read(payload)
		class := byte(rng.Intn(256))
		id := byte(rng.Intn(256))

		frame, err := Assemble(class, id, payload)
		if err != nil {
			t.Fatalf("assemble n=%d: %v", n, err)
		}
		if len(frame) != 8+n {
			t.Fatalf("frame length %d, want %d", len(frame), 8+n)
		}
		if frame[0] != Sync1 || frame[1] != Sync2 {
			t.Fatalf("bad sync bytes % X", frame[:2])
		}
		if frame[2] != class || frame[3] != id {
			t.Fatalf("bad header % X", frame[2:4])
		}
		if got := int(binary.LittleEndian.Uint16(frame[4:6])); got != n {
			t.Fatalf("length field %d, want %d", got, n)
		}
		if !bytes.Equal(frame[6:6+n], payload) {
			t.Fatalf("payload mangled")
		}
		ckA, ckB := Checksum(frame[2 : 6+n])
		if frame[6+n] != ckA || frame[7+n] != ckB {
			t.Fatalf("checksum trailer (%02X,%02X), want (%02X,%02X)",
				frame[6+n], frame[7+n], ckA, ckB)
		}

		// And a scanner recovers the identical frame.
		var sc Scanner
		var parsed Frame
		parsedOK := false
		for _, b := range frame {
			if f, ok := sc.Feed(b); ok {
				parsed = f
				parsedOK = true
			}
		}
		if !parsedOK {
			t.Fatalf("scanner did not complete a frame")
		}
		if parsed.Class != class || parsed.ID != id || !bytes.Equal(parsed.Payload, payload) {
			t.Fatalf("round trip mismatch")
		}
		if !parsed.ChecksumOK() {
			t.Fatalf("ChecksumOK false on a freshly assembled frame")
		}
	}
}

func TestAssemble_RejectsOversizedPayload(t *testing.T) {
	if _, err := Assemble(ClassCFG, IDNav5, make([]byte, MaxPayloadLen+1)); err == nil {
		t.Fatalf("expected error for payload > %d bytes", MaxPayloadLen)
	}
	if _, err := Assemble(ClassCFG, IDNav5, make([]byte, MaxPayloadLen)); err != nil {
		t.Fatalf("unexpected error at the limit: %v", err)
	}
}

func TestAssemble_SetModelByteVector(t *testing.T) {
	frame, err := Assemble(ClassCFG, IDNav5, NAV5Payload(ModelAirborne1G))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	want := []byte{
		0xB5, 0x62, 0x06, 0x24, 0x24, 0x00,
		0x01, 0x00, 0x06, 0x02,
	}
	want = append(want, make([]byte, 32)...)
	ckA, ckB := Checksum(frame[2 : len(frame)-2])
	want = append(want, ckA, ckB)
	if !bytes.Equal(frame, want) {
		t.Fatalf("set-model frame\n got % X\nwant % X", frame, want)
	}
}

func TestFrame_ChecksumOKDetectsCorruption(t *testing.T) {
	frame, err := Assemble(ClassACK, IDAckAck, []byte{0x06, 0x24})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	var sc Scanner
	var parsed Frame
	ok := false
	frame[7] ^= 0x01 // flip a payload bit
	for _, b := range frame {
		if f, fok := sc.Feed(b); fok {
			parsed, ok = f, true
		}
	}
	if !ok {
		t.Fatalf("scanner did not complete a frame")
	}
	if parsed.ChecksumOK() {
		t.Fatalf("corrupted frame passed checksum")
	}
}
