package gnss

// Package gnss drives blocking request/response exchanges with a u-blox
// receiver over a serial port:
// - Poll the dynamic platform model (CFG-NAV5)
// - Set the dynamic platform model and await ACK/NAK
// - Reset the receiver (CFG-RST), with or without awaiting the ACK
