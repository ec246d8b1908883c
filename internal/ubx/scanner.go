package ubx

type scanState int

const (
	seekSync1 scanState = iota
	seekSync2
	wantClass
	wantID
	wantLenLo
	wantLenHi
	wantPayload
	wantCkA
	wantCkB
)

// Scanner recovers UBX frames from a byte stream one byte at a time.
//
// It is a plain state machine with no I/O: callers feed it whatever bytes
// arrive from the serial port and collect a Frame whenever one completes.
// Bytes outside a frame are skipped, so the scanner resynchronizes on the
// next 0xB5 0x62 after line noise or a partial frame.
//
// The scanner never rejects a frame: unknown class/ID pairs and bad
// checksums still produce a Frame. Deciding what to do with them is the
// caller's job.
//
// The zero value is ready to use.
type Scanner struct {
	state   scanState
	class   byte
	id      byte
	length  int
	payload []byte
	ckA     byte
}

// Feed advances the scanner by one byte. When b completes a frame, Feed
// returns it with ok=true; otherwise ok is false.
func (s *Scanner) Feed(b byte) (Frame, bool) {
	switch s.state {
	case seekSync1:
		if b == Sync1 {
			s.state = seekSync2
		}
	case seekSync2:
		if b == Sync2 {
			s.state = wantClass
		} else if b != Sync1 {
			// 0xB5 0xB5 0x62 still syncs.
			s.state = seekSync1
		}
	case wantClass:
		s.class = b
		s.state = wantID
	case wantID:
		s.id = b
		s.state = wantLenLo
	case wantLenLo:
		s.length = int(b)
		s.state = wantLenHi
	case wantLenHi:
		s.length |= int(b) << 8
		s.payload = make([]byte, 0, s.length)
		if s.length == 0 {
			s.state = wantCkA
		} else {
			s.state = wantPayload
		}
	case wantPayload:
		s.payload = append(s.payload, b)
		if len(s.payload) == s.length {
			s.state = wantCkA
		}
	case wantCkA:
		s.ckA = b
		s.state = wantCkB
	case wantCkB:
		f := Frame{
			Class:   s.class,
			ID:      s.id,
			Payload: s.payload,
			CkA:     s.ckA,
			CkB:     b,
		}
		s.reset()
		return f, true
	}
	return Frame{}, false
}

func (s *Scanner) reset() {
	*s = Scanner{}
}
