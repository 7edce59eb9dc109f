package keys

// CommandType selects the meaning of a packet.
type CommandType byte

// Command types understood by the firmware.
const (
	TypeKey        CommandType = 0x10
	TypeMouseMove  CommandType = 0x20
	TypeMouseClick CommandType = 0x21
)

// Button is a mouse button bit mask. Buttons can be combined with |.
type Button byte

// Mouse buttons (for click commands).
const (
	MouseLeft   Button = 0x01
	MouseRight  Button = 0x02
	MouseMiddle Button = 0x04
)

// Key is a keyboard key code.
type Key byte

// KeyNone is the zero key, used when no modifier is wanted.
const KeyNone Key = 0x00

// ReservedBase is the first code not used by ASCII keys.
const ReservedBase Key = 0x80

// Keyboard modifiers.
const (
	KeyLeftCtrl   Key = 0x80
	KeyLeftShift  Key = 0x81
	KeyLeftAlt    Key = 0x82
	KeyLeftGUI    Key = 0x83
	KeyRightCtrl  Key = 0x84
	KeyRightShift Key = 0x85
	KeyRightAlt   Key = 0x86
	KeyRightGUI   Key = 0x87
)

// Within the alphanumeric cluster.
const (
	KeyTab       Key = 0xB3
	KeyCapsLock  Key = 0xC1
	KeyBackspace Key = 0xB2
	KeyReturn    Key = 0xB0
	KeyMenu      Key = 0xED
)

// Navigation cluster.
const (
	KeyInsert     Key = 0xD1
	KeyDelete     Key = 0xD4
	KeyHome       Key = 0xD2
	KeyEnd        Key = 0xD5
	KeyPageUp     Key = 0xD3
	KeyPageDown   Key = 0xD6
	KeyUpArrow    Key = 0xDA
	KeyDownArrow  Key = 0xD9
	KeyLeftArrow  Key = 0xD8
	KeyRightArrow Key = 0xD7
)

// Numeric keypad.
const (
	KeyNumLock    Key = 0xDB
	KeyKPSlash    Key = 0xDC
	KeyKPAsterisk Key = 0xDD
	KeyKPMinus    Key = 0xDE
	KeyKPPlus     Key = 0xDF
	KeyKPEnter    Key = 0xE0
	KeyKP1        Key = 0xE1
	KeyKP2        Key = 0xE2
	KeyKP3        Key = 0xE3
	KeyKP4        Key = 0xE4
	KeyKP5        Key = 0xE5
	KeyKP6        Key = 0xE6
	KeyKP7        Key = 0xE7
	KeyKP8        Key = 0xE8
	KeyKP9        Key = 0xE9
	KeyKP0        Key = 0xEA
	KeyKPDot      Key = 0xEB
)

// Escape and function keys.
const (
	KeyEsc Key = 0xB1
	KeyF1  Key = 0xC2
	KeyF2  Key = 0xC3
	KeyF3  Key = 0xC4
	KeyF4  Key = 0xC5
	KeyF5  Key = 0xC6
	KeyF6  Key = 0xC7
	KeyF7  Key = 0xC8
	KeyF8  Key = 0xC9
	KeyF9  Key = 0xCA
	KeyF10 Key = 0xCB
	KeyF11 Key = 0xCC
	KeyF12 Key = 0xCD
	KeyF13 Key = 0xF0
	KeyF14 Key = 0xF1
	KeyF15 Key = 0xF2
	KeyF16 Key = 0xF3
	KeyF17 Key = 0xF4
	KeyF18 Key = 0xF5
	KeyF19 Key = 0xF6
	KeyF20 Key = 0xF7
	KeyF21 Key = 0xF8
	KeyF22 Key = 0xF9
	KeyF23 Key = 0xFA
	KeyF24 Key = 0xFB
)

// Function control keys.
const (
	KeyPrintScreen Key = 0xCE
	KeyScrollLock  Key = 0xCF
	KeyPause       Key = 0xD0
)

// Char derives the key code of an ASCII character, which is its ordinal.
// It returns false for runes outside the ASCII range.
func Char(r rune) (Key, bool) {
	if r < 0 || r >= rune(ReservedBase) {
		return KeyNone, false
	}
	return Key(r), true
}

// MustChar is like Char but panics on non-ASCII runes.
func MustChar(r rune) Key {
	k, ok := Char(r)
	if !ok {
		panic("keys: non-ASCII character " + string(r))
	}
	return k
}

// IsReserved indicates the key is a named non-ASCII key.
func (k Key) IsReserved() bool {
	return k >= ReservedBase
}

// IsModifier indicates the key is one of the eight modifier keys.
func (k Key) IsModifier() bool {
	return k >= KeyLeftCtrl && k <= KeyRightGUI
}

// Has checks if all buttons in o are set in b.
func (b Button) Has(o Button) bool {
	return b&o == o
}
