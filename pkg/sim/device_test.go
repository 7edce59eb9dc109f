package sim

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/keys"
	"github.com/robotalks/hidlink/pkg/serial"
)

func readAll(t *testing.T, d *Device) string {
	buf := make([]byte, 256)
	var out []byte
	for {
		n, err := d.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return string(out)
		}
		require.NoError(t, err)
	}
}

func TestDeviceApply(t *testing.T) {
	testCases := []struct {
		name string
		pkt  comm.Packet
		resp string
	}{
		{"ctrl-n", comm.KeyPress('n', keys.KeyLeftCtrl), "OK key 0x6e mod 0x80\r\n"},
		{"move", comm.MouseMove(-127, 80, 2), "OK move -254 160\r\n"},
		{"move unscaled", comm.Command(keys.TypeMouseMove, 5), "OK move 5 0\r\n"},
		{"double click", comm.MouseClick(keys.MouseLeft, 2), "OK click LEFT x2\r\n"},
		{"click once", comm.Command(keys.TypeMouseClick, int(keys.MouseRight)), "OK click RIGHT x1\r\n"},
		{"unknown", comm.Encode(0x7f, 0, 0, 0), "ERR unknown type 0x7f\r\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDevice()
			_, err := tc.pkt.WriteTo(d)
			require.NoError(t, err)
			assert.Equal(t, tc.resp, readAll(t, d))
			assert.Equal(t, 1, d.State().Packets)
		})
	}
}

func TestDeviceState(t *testing.T) {
	d := NewDevice()
	d.Silent = true
	for _, pkt := range []comm.Packet{
		comm.KeyPress('h', keys.KeyNone),
		comm.KeyPress('i', keys.KeyNone),
		comm.KeyPress('a', keys.KeyLeftGUI),
		comm.KeyPress(keys.KeyReturn, keys.KeyNone),
		comm.MouseMove(10, -5, 3),
		comm.MouseMove(-10, 0, 1),
		comm.MouseClick(keys.MouseLeft|keys.MouseMiddle, 3),
	} {
		_, err := pkt.WriteTo(d)
		require.NoError(t, err)
	}
	s := d.State()
	assert.Equal(t, 7, s.Packets)
	assert.Equal(t, "hi", s.Typed())
	assert.Len(t, s.Strokes, 4)
	assert.Equal(t, Stroke{Key: 'a', Modifier: keys.KeyLeftGUI}, s.Strokes[2])
	assert.Equal(t, Pos2D{X: 20, Y: -15}, s.Cursor)
	assert.Equal(t, []Click{{Buttons: keys.MouseLeft | keys.MouseMiddle, Count: 3}}, s.Clicks)
	assert.Empty(t, readAll(t, d))
}

func TestDeviceResync(t *testing.T) {
	d := NewDevice()
	frame := comm.KeyPress('x', keys.KeyNone).Bytes()
	_, err := d.Write(append([]byte{0x42, 0x43}, frame...))
	require.NoError(t, err)
	s := d.State()
	assert.Equal(t, 2, s.Dropped)
	assert.Equal(t, "x", s.Typed())
}

func TestDeviceClosed(t *testing.T) {
	d := NewDevice()
	require.NoError(t, d.Close())
	_, err := d.Write([]byte{0x01})
	assert.Equal(t, io.ErrClosedPipe, err)
	_, err = d.Read(make([]byte, 1))
	assert.Equal(t, io.ErrClosedPipe, err)
}

func TestSenderOverSimulatedPort(t *testing.T) {
	d := NewDevice()
	sender := comm.NewSender(serial.NewPort(d))
	defer sender.Close()

	resp, err := sender.Send(comm.KeyPress('n', keys.KeyLeftCtrl))
	require.NoError(t, err)
	assert.Equal(t, "OK key 0x6e mod 0x80", resp)

	sender.ResponseTimeout = 500 * time.Millisecond
	resp, err = sender.Send(comm.MouseMove(1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "OK move 1 1", resp)
	assert.Equal(t, Pos2D{X: 1, Y: 1}, d.State().Cursor)
}
