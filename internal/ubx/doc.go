package ubx

// Package ubx implements the wire layer of the u-blox UBX binary protocol:
//
// - Fletcher checksum and frame assembly (pure, no I/O)
// - A per-byte scanner that recovers frames from a noisy serial stream
// - The small set of CFG/ACK messages this tool exchanges
