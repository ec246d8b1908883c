package gnss

import (
	"fmt"
	"time"

	"ubxctl/internal/ubx"
)

// exchange is the correlation state for one request: what was just sent,
// what would resolve it, and how long to wait. Created after the write,
// consumed by the first matching frame or the deadline, never reused.
type exchange struct {
	msgClass byte
	msgID    byte

	// wantAck resolves the exchange on an ACK/NAK that echoes
	// msgClass/msgID.
	wantAck bool

	// wantResp resolves the exchange on a data response with this header.
	respClass byte
	respID    byte
	wantResp  bool

	// deadline bounds the whole wait; NoDeadline waits forever.
	deadline time.Duration
}

// waitState is where an exchange ended up: Sent → one of these.
type waitState int

const (
	timedOut waitState = iota
	acked
	naked
	responded
)

type outcome struct {
	state waitState
	// model is the dynamic-model byte from a CFG-NAV5 response; only set
	// when state == responded.
	model byte
}

// await runs the Sent state of an exchange: read bytes, feed the frame
// scanner, classify each completed frame, and stop on the first one that
// resolves the exchange or when the deadline passes. Non-matching frames
// are discarded and scanning continues; port errors abort.
func (d *Device) await(x exchange) (outcome, error) {
	var deadline time.Time
	if x.deadline >= 0 {
		deadline = time.Now().Add(x.deadline)
	}

	var sc ubx.Scanner
	buf := make([]byte, 64)
	for {
		wait := NoDeadline
		if !deadline.IsZero() {
			wait = time.Until(deadline)
			if wait <= 0 {
				return outcome{state: timedOut}, nil
			}
		}
		if err := d.port.SetReadTimeout(wait); err != nil {
			return outcome{}, fmt.Errorf("gnss: set read timeout: %w", err)
		}

		n, err := d.port.Read(buf)
		if err != nil {
			return outcome{}, fmt.Errorf("gnss: read: %w", err)
		}
		// n == 0 is a timed-out read; the deadline check above decides.

		for _, b := range buf[:n] {
			frame, ok := sc.Feed(b)
			if !ok {
				continue
			}
			if d.opts.VerifyChecksums && !frame.ChecksumOK() {
				d.logf("gnss: dropping frame %02X/%02X: bad checksum", frame.Class, frame.ID)
				continue
			}
			if out, ok := classify(x, frame); ok {
				return out, nil
			}
			d.logf("gnss: ignoring frame %02X/%02X (%d bytes)", frame.Class, frame.ID, len(frame.Payload))
		}
	}
}

// classify decides whether a well-formed frame resolves the exchange.
func classify(x exchange, f ubx.Frame) (outcome, bool) {
	if x.wantAck && f.Class == ubx.ClassACK && echoesRequest(x, f) {
		switch f.ID {
		case ubx.IDAckAck:
			return outcome{state: acked}, true
		case ubx.IDAckNak:
			return outcome{state: naked}, true
		}
	}
	// The model byte sits at payload offset 2, so a usable response needs
	// at least 3 payload bytes. (The real CFG-NAV5 response carries 36.)
	if x.wantResp && f.Class == x.respClass && f.ID == x.respID && len(f.Payload) >= 3 {
		return outcome{state: responded, model: f.Payload[2]}, true
	}
	return outcome{}, false
}

// echoesRequest reports whether an ACK/NAK payload names the request this
// exchange sent. ACK frames for other messages are somebody else's.
func echoesRequest(x exchange, f ubx.Frame) bool {
	return len(f.Payload) >= 2 && f.Payload[0] == x.msgClass && f.Payload[1] == x.msgID
}
