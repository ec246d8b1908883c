package serialport

// Package serialport opens the receiver's serial device for exclusive use.
//
// Exclusivity matters: two processes interleaving UBX exchanges on one
// port will steal each other's responses. A flock-based lock file keeps a
// second ubxctl invocation out; within the process the engine owns the
// port by construction.

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"ubxctl/internal/gnss"
)

// DefaultBaud is what u-blox receivers ship with.
const DefaultBaud = 9600

// Open opens device at the given baud (8N1) and returns it wrapped as a
// gnss.Port. Closing the port releases the device lock.
func Open(device string, baud int) (gnss.Port, error) {
	if device == "" {
		return nil, fmt.Errorf("serialport: no device given")
	}
	if baud <= 0 {
		baud = DefaultBaud
	}

	unlock, err := lockDevice(device)
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(device, mode)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("serialport: open %s: %w", device, err)
	}
	return &port{Port: p, unlock: unlock}, nil
}

type port struct {
	serial.Port
	unlock func()
}

// SetReadTimeout maps the engine's negative "no deadline" convention onto
// the library's blocking mode.
func (p *port) SetReadTimeout(d time.Duration) error {
	if d < 0 {
		return p.Port.SetReadTimeout(serial.NoTimeout)
	}
	return p.Port.SetReadTimeout(d)
}

func (p *port) Close() error {
	err := p.Port.Close()
	p.unlock()
	return err
}
