package comm

import (
	"fmt"
	"io"

	"github.com/robotalks/hidlink/pkg/keys"
)

// Framing constants.
const (
	PacketSize      = 6
	StartByte  byte = 0x01
	EndByte    byte = 0xff
)

// Packet is a single command frame.
type Packet struct {
	Type keys.CommandType
	Data [3]byte
}

// Encode builds a packet. data1 and data2 are masked to their low 8 bits,
// so negative values wrap (-127 becomes 0x81). data3 is sent as-is.
func Encode(cmd keys.CommandType, data1, data2 int, data3 byte) Packet {
	return Packet{
		Type: cmd,
		Data: [3]byte{byte(data1 & 0xff), byte(data2 & 0xff), data3},
	}
}

// Command builds a packet with data2 and data3 set to zero.
func Command(cmd keys.CommandType, data1 int) Packet {
	return Encode(cmd, data1, 0, 0)
}

// EncodeStrict is like Encode but refuses values which would be altered
// by masking: data1 and data2 must be in [-128, 255], data3 in [0, 255].
func EncodeStrict(cmd keys.CommandType, data1, data2, data3 int) (Packet, error) {
	for n, v := range []int{data1, data2} {
		if v < -128 || v > 0xff {
			return Packet{}, fmt.Errorf("data%d %d: %w", n+1, v, ErrValueRange)
		}
	}
	if data3 < 0 || data3 > 0xff {
		return Packet{}, fmt.Errorf("data3 %d: %w", data3, ErrValueRange)
	}
	return Encode(cmd, data1, data2, byte(data3)), nil
}

// KeyPress builds a KEY packet, modifier may be keys.KeyNone.
func KeyPress(key, modifier keys.Key) Packet {
	return Encode(keys.TypeKey, int(key), int(modifier), 0)
}

// MouseMove builds a MOUSE_MOVE packet with relative deltas and a scale
// factor applied by the firmware.
func MouseMove(dx, dy int, scale byte) Packet {
	return Encode(keys.TypeMouseMove, dx, dy, scale)
}

// MouseClick builds a MOUSE_CLICK packet.
func MouseClick(buttons keys.Button, count byte) Packet {
	return Encode(keys.TypeMouseClick, int(buttons), int(count), 0)
}

// Bytes returns encoded bytes for sending.
func (p Packet) Bytes() []byte {
	return []byte{StartByte, byte(p.Type), p.Data[0], p.Data[1], p.Data[2], EndByte}
}

// WriteTo writes the whole frame with a single Write.
func (p Packet) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	if err == nil && n < PacketSize {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// String implements fmt.Stringer.
func (p Packet) String() string {
	return fmt.Sprintf("%s[%02x %02x %02x]", p.Type, p.Data[0], p.Data[1], p.Data[2])
}

// Decode parses a complete frame.
func Decode(b []byte) (Packet, error) {
	if len(b) != PacketSize {
		return Packet{}, fmt.Errorf("%w: %d", ErrFrameLength, len(b))
	}
	if b[0] != StartByte {
		return Packet{}, fmt.Errorf("%w: 0x%02x", ErrFrameStart, b[0])
	}
	if b[PacketSize-1] != EndByte {
		return Packet{}, fmt.Errorf("%w: 0x%02x", ErrFrameEnd, b[PacketSize-1])
	}
	return Packet{
		Type: keys.CommandType(b[1]),
		Data: [3]byte{b[2], b[3], b[4]},
	}, nil
}
