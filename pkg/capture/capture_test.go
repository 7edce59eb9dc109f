package capture

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/keys"
	"github.com/robotalks/hidlink/pkg/serial"
	"github.com/robotalks/hidlink/pkg/sim"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := Record{
		Time:     time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC),
		Frame:    []byte{0x01, 0x21, 0x01, 0x02, 0x00, 0xff},
		Sent:     true,
		Response: "OK click LEFT x2",
		Duration: 3 * time.Millisecond,
	}
	data, err := Encode(rec)
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, rec.Time.Equal(out.Time))
	out.Time = rec.Time
	assert.Equal(t, rec, out)

	again, err := Encode(rec)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")
}

func TestWriterObserver(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.PacketSent(&comm.SendResult{
		Time:     time.Now(),
		Packet:   comm.KeyPress('n', keys.KeyLeftCtrl),
		Sent:     true,
		Response: "OK",
	})
	w.PacketSent(&comm.SendResult{
		Time:   time.Now(),
		Packet: comm.MouseMove(-127, 80, 2),
		Err:    &comm.TransportError{Op: "write", Err: errors.New("unplugged")},
	})
	require.NoError(t, w.Close())
	w.PacketSent(&comm.SendResult{Packet: comm.Command(keys.TypeMouseClick, 1)})

	r := NewReader(&buf)
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x10, 0x6e, 0x80, 0x00, 0xff}, rec.Frame)
	assert.True(t, rec.Sent)
	assert.Equal(t, "OK", rec.Response)
	assert.Empty(t, rec.Error)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.False(t, rec.Sent)
	assert.Equal(t, "transport write: unplugged", rec.Error)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCaptureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.cbor")
	w, err := Create(path)
	require.NoError(t, err)

	dev := sim.NewDevice()
	sender := comm.NewSender(serial.NewPort(dev))
	sender.Observer = w
	defer sender.Close()

	sent := []comm.Packet{
		comm.MouseClick(keys.MouseLeft, 2),
		comm.KeyPress('n', keys.KeyLeftCtrl),
		comm.MouseMove(-127, 80, 2),
	}
	for _, pkt := range sent {
		_, err := sender.Send(pkt)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	pkts, err := r.Packets()
	require.NoError(t, err)
	assert.Equal(t, sent, pkts)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.cbor"))
	assert.True(t, os.IsNotExist(err))
}
