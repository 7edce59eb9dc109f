package comm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/hidlink/pkg/keys"
)

func TestPacket(t *testing.T) {
	testCases := []struct {
		name   string
		packet Packet
		expect []byte
	}{
		{"double left click", Encode(keys.TypeMouseClick, int(keys.MouseLeft), 0x02, 0), []byte{0x01, 0x21, 0x01, 0x02, 0x00, 0xff}},
		{"ctrl+n", Encode(keys.TypeKey, int('n'), int(keys.KeyLeftCtrl), 0), []byte{0x01, 0x10, 0x6e, 0x80, 0x00, 0xff}},
		{"mouse move", Encode(keys.TypeMouseMove, -127, 80, 2), []byte{0x01, 0x20, 0x81, 0x50, 0x02, 0xff}},
		{"click helper", MouseClick(keys.MouseLeft, 2), []byte{0x01, 0x21, 0x01, 0x02, 0x00, 0xff}},
		{"key helper", KeyPress(keys.MustChar('n'), keys.KeyLeftCtrl), []byte{0x01, 0x10, 0x6e, 0x80, 0x00, 0xff}},
		{"move helper", MouseMove(-127, 80, 2), []byte{0x01, 0x20, 0x81, 0x50, 0x02, 0xff}},
		{"unknown type", Command(keys.CommandType(0x7f), 1), []byte{0x01, 0x7f, 0x01, 0x00, 0x00, 0xff}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.packet.Bytes())
			var buf bytes.Buffer
			n, err := tc.packet.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.expect, buf.Bytes())
			require.EqualValues(t, PacketSize, n)
		})
	}
}

func TestEncodeMasking(t *testing.T) {
	for x := -128; x <= 383; x++ {
		want := byte(((x % 256) + 256) % 256)
		b := Encode(keys.TypeMouseMove, x, x, 0).Bytes()
		require.Len(t, b, PacketSize)
		require.Equal(t, StartByte, b[0])
		require.Equal(t, EndByte, b[5])
		require.Equalf(t, want, b[2], "data1 %d", x)
		require.Equalf(t, want, b[3], "data2 %d", x)
	}
	require.Equal(t, byte(129), Encode(keys.TypeMouseMove, -127, 0, 0).Bytes()[2])
}

func TestFramingNeverViolated(t *testing.T) {
	for _, d3 := range []byte{0x00, 0x01, 0xff} {
		for _, v := range []int{-1 << 20, -1, 0, 1, 0xff, 0x100, 1 << 20} {
			b := Encode(keys.CommandType(0xff), v, -v, d3).Bytes()
			require.Len(t, b, PacketSize)
			require.Equal(t, StartByte, b[0])
			require.Equal(t, EndByte, b[5])
			require.Equal(t, d3, b[4])
		}
	}
}

func TestCommandDefaults(t *testing.T) {
	for _, d1 := range []int{-5, 0, 0x6e, 300} {
		require.Equal(t, Encode(keys.TypeKey, d1, 0x00, 0x00), Command(keys.TypeKey, d1))
	}
}

func TestEncodeStrict(t *testing.T) {
	pkt, err := EncodeStrict(keys.TypeMouseMove, -127, 80, 2)
	require.NoError(t, err)
	require.Equal(t, MouseMove(-127, 80, 2), pkt)

	pkt, err = EncodeStrict(keys.TypeKey, 255, -128, 255)
	require.NoError(t, err)
	require.Equal(t, [3]byte{0xff, 0x80, 0xff}, pkt.Data)

	testCases := []struct {
		name       string
		d1, d2, d3 int
	}{
		{"data1 too large", 256, 0, 0},
		{"data1 too small", -129, 0, 0},
		{"data2 too large", 0, 1000, 0},
		{"data3 negative", 0, 0, -1},
		{"data3 too large", 0, 0, 256},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeStrict(keys.TypeKey, tc.d1, tc.d2, tc.d3)
			require.ErrorIs(t, err, ErrValueRange)
		})
	}
}

func TestDecode(t *testing.T) {
	for _, pkt := range []Packet{
		MouseClick(keys.MouseLeft|keys.MouseRight, 1),
		KeyPress(keys.KeyF12, keys.KeyNone),
		MouseMove(-128, 127, 255),
		Encode(keys.CommandType(0x01), 0xff, 0x01, 0xff),
	} {
		decoded, err := Decode(pkt.Bytes())
		require.NoError(t, err)
		require.Equal(t, pkt, decoded)
		require.Equal(t, pkt.Bytes(), decoded.Bytes())
	}

	testCases := []struct {
		name   string
		in     []byte
		expect error
	}{
		{"empty", nil, ErrFrameLength},
		{"short", []byte{0x01, 0x10, 0x00, 0x00, 0xff}, ErrFrameLength},
		{"long", []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0xff, 0xff}, ErrFrameLength},
		{"bad start", []byte{0x02, 0x10, 0x00, 0x00, 0x00, 0xff}, ErrFrameStart},
		{"bad end", []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0xfe}, ErrFrameEnd},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			require.ErrorIs(t, err, tc.expect)
		})
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

type failWriter struct{ err error }

func (w failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestPacketWriteToErrors(t *testing.T) {
	n, err := MouseMove(1, 1, 1).WriteTo(shortWriter{})
	require.EqualValues(t, PacketSize-1, n)
	require.Equal(t, io.ErrShortWrite, err)

	cause := errors.New("unplugged")
	_, err = MouseMove(1, 1, 1).WriteTo(failWriter{err: cause})
	require.Equal(t, cause, err)
}

func TestPacketString(t *testing.T) {
	require.Equal(t, "MOUSE_MOVE[81 50 02]", MouseMove(-127, 80, 2).String())
	require.Equal(t, "0x42[00 00 00]", Command(keys.CommandType(0x42), 0).String())
}
