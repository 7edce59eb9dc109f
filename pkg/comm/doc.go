// Package comm provides the HID link packet protocol.
package comm

// The protocol is spoken between a host and a microcontroller that
// replays keyboard and mouse actions, over a peer-to-peer channel
// (e.g. serial port).
//
// Every command is a fixed 6-byte frame:
//
//	+-------+----------+-------+-------+-------+------+
//	| 0x01  | cmd type | data1 | data2 | data3 | 0xff |
//	+-------+----------+-------+-------+-------+------+
//
// data1 and data2 carry the low 8 bits of the caller's integer, so signed
// values such as mouse deltas wrap as two's complement and the firmware
// reinterprets them as int8. data3 is a raw byte.
//
// There is no sequence number or checksum. The host sends one command at a
// time and may read back one line of diagnostic text after each frame.
//
// Producer: host
// Consumer: firmware
