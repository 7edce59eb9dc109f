package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrUnknownName indicates a name is not part of the vocabulary.
var ErrUnknownName = errors.New("unknown name")

var commandTypeNames = map[CommandType]string{
	TypeKey:        "KEY",
	TypeMouseMove:  "MOUSE_MOVE",
	TypeMouseClick: "MOUSE_CLICK",
}

var buttonNames = []struct {
	button Button
	name   string
}{
	{MouseLeft, "LEFT"},
	{MouseRight, "RIGHT"},
	{MouseMiddle, "MIDDLE"},
}

var keyNames = map[Key]string{
	KeyLeftCtrl:   "LEFT_CTRL",
	KeyLeftShift:  "LEFT_SHIFT",
	KeyLeftAlt:    "LEFT_ALT",
	KeyLeftGUI:    "LEFT_GUI",
	KeyRightCtrl:  "RIGHT_CTRL",
	KeyRightShift: "RIGHT_SHIFT",
	KeyRightAlt:   "RIGHT_ALT",
	KeyRightGUI:   "RIGHT_GUI",

	KeyTab:       "TAB",
	KeyCapsLock:  "CAPS_LOCK",
	KeyBackspace: "BACKSPACE",
	KeyReturn:    "RETURN",
	KeyMenu:      "MENU",

	KeyInsert:     "INSERT",
	KeyDelete:     "DELETE",
	KeyHome:       "HOME",
	KeyEnd:        "END",
	KeyPageUp:     "PAGE_UP",
	KeyPageDown:   "PAGE_DOWN",
	KeyUpArrow:    "UP_ARROW",
	KeyDownArrow:  "DOWN_ARROW",
	KeyLeftArrow:  "LEFT_ARROW",
	KeyRightArrow: "RIGHT_ARROW",

	KeyNumLock:    "NUM_LOCK",
	KeyKPSlash:    "KP_SLASH",
	KeyKPAsterisk: "KP_ASTERISK",
	KeyKPMinus:    "KP_MINUS",
	KeyKPPlus:     "KP_PLUS",
	KeyKPEnter:    "KP_ENTER",
	KeyKP1:        "KP_1",
	KeyKP2:        "KP_2",
	KeyKP3:        "KP_3",
	KeyKP4:        "KP_4",
	KeyKP5:        "KP_5",
	KeyKP6:        "KP_6",
	KeyKP7:        "KP_7",
	KeyKP8:        "KP_8",
	KeyKP9:        "KP_9",
	KeyKP0:        "KP_0",
	KeyKPDot:      "KP_DOT",

	KeyEsc: "ESC",
	KeyF1:  "F1",
	KeyF2:  "F2",
	KeyF3:  "F3",
	KeyF4:  "F4",
	KeyF5:  "F5",
	KeyF6:  "F6",
	KeyF7:  "F7",
	KeyF8:  "F8",
	KeyF9:  "F9",
	KeyF10: "F10",
	KeyF11: "F11",
	KeyF12: "F12",
	KeyF13: "F13",
	KeyF14: "F14",
	KeyF15: "F15",
	KeyF16: "F16",
	KeyF17: "F17",
	KeyF18: "F18",
	KeyF19: "F19",
	KeyF20: "F20",
	KeyF21: "F21",
	KeyF22: "F22",
	KeyF23: "F23",
	KeyF24: "F24",

	KeyPrintScreen: "PRINT_SCREEN",
	KeyScrollLock:  "SCROLL_LOCK",
	KeyPause:       "PAUSE",
}

var keysByName = make(map[string]Key, len(keyNames))

func init() {
	for k, name := range keyNames {
		keysByName[name] = k
	}
}

// String implements fmt.Stringer.
func (t CommandType) String() string {
	if name, ok := commandTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", byte(t))
}

// String implements fmt.Stringer.
// Combined masks are joined with "|", unknown bits are printed in hex.
func (b Button) String() string {
	if b == 0 {
		return "NONE"
	}
	var names []string
	rest := b
	for _, item := range buttonNames {
		if b.Has(item.button) {
			names = append(names, item.name)
			rest &^= item.button
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%02x", byte(rest)))
	}
	return strings.Join(names, "|")
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 0x20 && k < 0x7f {
		return strconv.QuoteRune(rune(k))
	}
	return fmt.Sprintf("0x%02x", byte(k))
}

// Names lists the names of all reserved keys.
func Names() []string {
	names := make([]string, 0, len(keysByName))
	for name := range keysByName {
		names = append(names, name)
	}
	return names
}

func normalize(name, prefix string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.Replace(name, "-", "_", -1)
	return strings.TrimPrefix(name, prefix)
}

// ParseKey looks up a key by its vocabulary name (case-insensitive, an
// optional KEY_ prefix is accepted). A single printable ASCII character
// is converted with Char and keeps its case.
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r >= 0x20 && r < 0x7f {
			return Key(r), nil
		}
		return KeyNone, fmt.Errorf("key %q: %w", name, ErrUnknownName)
	}
	if k, ok := keysByName[normalize(name, "KEY_")]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("key %q: %w", name, ErrUnknownName)
}

// ParseButton looks up a single mouse button by name. Both "LEFT" and
// "MOUSE_LEFT_CLICK" forms are accepted.
func ParseButton(name string) (Button, error) {
	n := strings.TrimSuffix(normalize(name, "MOUSE_"), "_CLICK")
	for _, item := range buttonNames {
		if item.name == n {
			return item.button, nil
		}
	}
	return 0, fmt.Errorf("button %q: %w", name, ErrUnknownName)
}

// ParseCommandType looks up a command type by name, e.g. "MOUSE_MOVE"
// or "TYPE_MOUSE_MOVE".
func ParseCommandType(name string) (CommandType, error) {
	n := normalize(name, "TYPE_")
	for t, tn := range commandTypeNames {
		if tn == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("command type %q: %w", name, ErrUnknownName)
}
