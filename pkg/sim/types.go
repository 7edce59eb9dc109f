package sim

import "github.com/robotalks/hidlink/pkg/keys"

// Pos2D defines a cursor position in pixels.
type Pos2D struct {
	X, Y int
}

// Add is a helper to add Pos2D.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// OffsetBy performs Add in-place.
func (p *Pos2D) OffsetBy(p1 Pos2D) *Pos2D {
	p.X += p1.X
	p.Y += p1.Y
	return p
}

// Stroke is a key press, optionally with a held modifier.
type Stroke struct {
	Key      keys.Key
	Modifier keys.Key
}

// Click is a mouse click with repeat count.
type Click struct {
	Buttons keys.Button
	Count   int
}

// State is the observable HID state of the simulated device.
type State struct {
	Cursor  Pos2D
	Strokes []Stroke
	Clicks  []Click
	// Packets counts frames received, including unknown types.
	Packets int
	// Dropped counts bytes discarded by framing errors.
	Dropped int
}

// Typed returns the printable keys pressed without a modifier.
func (s *State) Typed() string {
	var b []byte
	for _, st := range s.Strokes {
		if st.Modifier == keys.KeyNone && st.Key >= 0x20 && st.Key < 0x7f {
			b = append(b, byte(st.Key))
		}
	}
	return string(b)
}
