// Package keys defines the command vocabulary of the HID link protocol.
package keys

// The vocabulary gives names to the byte values carried by a packet:
// command type selectors, mouse button masks and keyboard key codes.
//
// Key codes follow the Arduino Keyboard.h convention. Printable ASCII keys
// use the ordinal of the character itself (0x00-0x7f), see Char.
// Every other key has a reserved code at or above 0x80, so the two ranges
// never collide.
