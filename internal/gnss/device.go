package gnss

import (
	"errors"
	"fmt"
	"io"
	"time"

	"ubxctl/internal/ubx"
)

// Port is the serial byte stream the engine talks over. It is satisfied by
// go.bug.st/serial.Port and by the test fakes.
//
// SetReadTimeout bounds subsequent Reads: a timed-out Read returns (0, nil)
// with no data consumed. A negative duration means Reads block until a byte
// arrives or the port fails.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(d time.Duration) error
}

// NoDeadline disables the wait deadline of an exchange.
const NoDeadline time.Duration = -1

// Default exchange deadlines. The ACK wait matches the reference tooling;
// the poll wait is bounded here on purpose (an unbounded poll hangs forever
// against a dead receiver) but can be disabled with NoDeadline.
const (
	DefaultAckTimeout  = 2 * time.Second
	DefaultPollTimeout = 3 * time.Second
)

// ErrNoResponse is returned by PollDynamicModel when the receiver sent no
// matching response before the deadline. It means "no answer", which is
// distinct from any kind of rejection.
var ErrNoResponse = errors.New("gnss: no response before deadline")

// Result is the tri-state outcome of an acknowledged configuration write.
//
// Unknown means the deadline passed without an ACK or NAK. Callers must not
// read it as rejection: the receiver may have applied the change and the
// answer was lost, or it may be rebooting.
type Result int

const (
	Unknown Result = iota
	Acked
	Rejected
)

func (r Result) String() string {
	switch r {
	case Acked:
		return "acknowledged"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Options tunes a Device. The zero value gets the defaults above.
type Options struct {
	// AckTimeout bounds the ACK/NAK wait after a configuration write.
	AckTimeout time.Duration

	// PollTimeout bounds the wait for a poll response. NoDeadline makes
	// PollDynamicModel block until the receiver answers or the port fails.
	PollTimeout time.Duration

	// VerifyChecksums drops received frames whose checksum trailer does not
	// match. Off by default: u-blox receivers on a short cable rarely
	// corrupt frames, and a dropped frame just extends the wait.
	VerifyChecksums bool

	// Logf, when set, receives diagnostics about discarded frames.
	Logf func(format string, args ...any)
}

// Device drives request/response exchanges with a u-blox receiver.
//
// It owns the port exclusively: one exchange at a time, one goroutine,
// write then read until a matching frame, a deadline, or a port error.
// There is no pipelining.
type Device struct {
	port Port
	opts Options
}

func New(port Port, opts Options) *Device {
	if opts.AckTimeout == 0 {
		opts.AckTimeout = DefaultAckTimeout
	}
	if opts.PollTimeout == 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	return &Device{port: port, opts: opts}
}

// Close releases the underlying port.
func (d *Device) Close() error {
	return d.port.Close()
}

// PollDynamicModel sends an empty CFG-NAV5 poll and waits for the CFG-NAV5
// response, returning the dynamic platform model it carries.
func (d *Device) PollDynamicModel() (ubx.DynModel, error) {
	if err := d.send(ubx.ClassCFG, ubx.IDNav5, nil); err != nil {
		return 0, err
	}
	out, err := d.await(exchange{
		msgClass:  ubx.ClassCFG,
		msgID:     ubx.IDNav5,
		respClass: ubx.ClassCFG,
		respID:    ubx.IDNav5,
		wantResp:  true,
		deadline:  d.opts.PollTimeout,
	})
	if err != nil {
		return 0, err
	}
	if out.state != responded {
		return 0, ErrNoResponse
	}
	return ubx.DynModel(out.model), nil
}

// SetDynamicModel writes a CFG-NAV5 changing only the dynamic platform
// model and waits for the receiver's ACK or NAK.
func (d *Device) SetDynamicModel(m ubx.DynModel) (Result, error) {
	return d.configure(ubx.IDNav5, ubx.NAV5Payload(m))
}

// Reset sends a CFG-RST and returns as soon as the frame is written. The
// receiver reboots and will usually never answer, so there is nothing to
// wait for.
func (d *Device) Reset(resetType byte, bbrMask uint16) error {
	return d.send(ubx.ClassCFG, ubx.IDRst, ubx.RSTPayload(resetType, bbrMask))
}

// ResetAndConfirm sends a CFG-RST and then waits for an ACK like any other
// configuration write. A rebooting receiver may answer Unknown; that is
// expected and not a failure.
func (d *Device) ResetAndConfirm(resetType byte, bbrMask uint16) (Result, error) {
	return d.configure(ubx.IDRst, ubx.RSTPayload(resetType, bbrMask))
}

func (d *Device) configure(id byte, payload []byte) (Result, error) {
	if err := d.send(ubx.ClassCFG, id, payload); err != nil {
		return Unknown, err
	}
	out, err := d.await(exchange{
		msgClass: ubx.ClassCFG,
		msgID:    id,
		wantAck:  true,
		deadline: d.opts.AckTimeout,
	})
	if err != nil {
		return Unknown, err
	}
	switch out.state {
	case acked:
		return Acked, nil
	case naked:
		return Rejected, nil
	default:
		return Unknown, nil
	}
}

func (d *Device) send(class, id byte, payload []byte) error {
	frame, err := ubx.Assemble(class, id, payload)
	if err != nil {
		return err
	}
	if _, err := d.port.Write(frame); err != nil {
		return fmt.Errorf("gnss: write %02X/%02X: %w", class, id, err)
	}
	return nil
}

func (d *Device) logf(format string, args ...any) {
	if d.opts.Logf != nil {
		d.opts.Logf(format, args...)
	}
}
