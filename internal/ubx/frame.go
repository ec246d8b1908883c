package ubx

import (
	"encoding/binary"
	"fmt"
)

// Frame sync bytes. Every UBX frame on the wire starts with these two.
const (
	Sync1 byte = 0xB5
	Sync2 byte = 0x62
)

// Message classes and IDs exchanged by this tool.
const (
	ClassCFG byte = 0x06
	ClassACK byte = 0x05

	IDNav5 byte = 0x24 // CFG-NAV5: navigation engine settings
	IDRst  byte = 0x04 // CFG-RST: receiver reset

	IDAckAck byte = 0x01 // ACK-ACK
	IDAckNak byte = 0x00 // ACK-NAK
)

// MaxPayloadLen is the largest payload a UBX frame can carry; the length
// field is an unsigned 16-bit little-endian count.
const MaxPayloadLen = 65535

// Checksum computes the 8-bit Fletcher checksum used by UBX.
//
// The input must be exactly the bytes the checksum covers:
// class ‖ id ‖ length(LE16) ‖ payload — never the sync bytes.
func Checksum(data []byte) (ckA, ckB byte) {
	for _, b := range data {
		ckA += b
		ckB += ckA
	}
	return ckA, ckB
}

// Frame is one parsed UBX frame, sync bytes stripped.
type Frame struct {
	Class   byte
	ID      byte
	Payload []byte

	// CkA/CkB are the checksum bytes as received; they are not validated
	// by the scanner. See ChecksumOK.
	CkA byte
	CkB byte
}

// ChecksumOK recomputes the checksum over the covered bytes and compares
// it with the received trailer.
func (f Frame) ChecksumOK() bool {
	covered := make([]byte, 4+len(f.Payload))
	covered[0] = f.Class
	covered[1] = f.ID
	binary.LittleEndian.PutUint16(covered[2:4], uint16(len(f.Payload)))
	copy(covered[4:], f.Payload)
	a, b := Checksum(covered)
	return a == f.CkA && b == f.CkB
}

// Assemble serializes a complete UBX frame:
// sync1 sync2 class id length(LE16) payload ckA ckB.
//
// Payloads longer than MaxPayloadLen cannot be represented in the length
// field and are rejected before any I/O happens.
func Assemble(class, id byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadLen {
		return nil, fmt.Errorf("ubx: payload too long (%d bytes, max %d)", len(payload), MaxPayloadLen)
	}
	frame := make([]byte, 8+len(payload))
	frame[0] = Sync1
	frame[1] = Sync2
	frame[2] = class
	frame[3] = id
	binary.LittleEndian.PutUint16(frame[4:6], uint16(len(payload)))
	copy(frame[6:], payload)
	ckA, ckB := Checksum(frame[2 : 6+len(payload)])
	frame[6+len(payload)] = ckA
	frame[7+len(payload)] = ckB
	return frame, nil
}
