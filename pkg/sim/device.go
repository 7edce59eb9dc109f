// Package sim provides a simulated HID firmware for dry runs and tests.
package sim

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/keys"
)

// Device is an io.ReadWriteCloser which behaves like the firmware: bytes
// written are parsed into packets and applied to State, one response
// line per packet is queued for reading.
type Device struct {
	// Silent disables response lines.
	Silent bool

	parser comm.Parser
	state  State
	out    bytes.Buffer
	closed bool
	lock   sync.Mutex
}

// NewDevice creates a Device.
func NewDevice() *Device {
	return &Device{}
}

// Write implements io.Writer.
func (d *Device) Write(p []byte) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}
	for _, b := range p {
		pr := d.parser.Parse(b)
		d.state.Dropped += pr.Dropped
		if pr.Packet != nil {
			d.apply(*pr.Packet)
		}
	}
	return len(p), nil
}

// Read implements io.Reader. It returns io.EOF when no response is
// pending, like a serial port read timing out.
func (d *Device) Read(p []byte) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return 0, io.ErrClosedPipe
	}
	if d.out.Len() == 0 {
		return 0, io.EOF
	}
	return d.out.Read(p)
}

// Close implements io.Closer.
func (d *Device) Close() error {
	d.lock.Lock()
	d.closed = true
	d.lock.Unlock()
	return nil
}

// State returns a copy of the current state.
func (d *Device) State() State {
	d.lock.Lock()
	defer d.lock.Unlock()
	s := d.state
	s.Strokes = append([]Stroke(nil), d.state.Strokes...)
	s.Clicks = append([]Click(nil), d.state.Clicks...)
	return s
}

func (d *Device) apply(pkt comm.Packet) {
	d.state.Packets++
	glog.V(4).Infof("SIM RCV %s", pkt)
	var resp string
	switch pkt.Type {
	case keys.TypeKey:
		st := Stroke{Key: keys.Key(pkt.Data[0]), Modifier: keys.Key(pkt.Data[1])}
		d.state.Strokes = append(d.state.Strokes, st)
		resp = fmt.Sprintf("OK key 0x%02x mod 0x%02x", pkt.Data[0], pkt.Data[1])
	case keys.TypeMouseMove:
		scale := int(pkt.Data[2])
		if scale == 0 {
			scale = 1
		}
		delta := Pos2D{X: int(int8(pkt.Data[0])) * scale, Y: int(int8(pkt.Data[1])) * scale}
		d.state.Cursor.OffsetBy(delta)
		resp = fmt.Sprintf("OK move %d %d", delta.X, delta.Y)
	case keys.TypeMouseClick:
		click := Click{Buttons: keys.Button(pkt.Data[0]), Count: int(pkt.Data[1])}
		if click.Count == 0 {
			click.Count = 1
		}
		d.state.Clicks = append(d.state.Clicks, click)
		resp = fmt.Sprintf("OK click %s x%d", click.Buttons, click.Count)
	default:
		resp = fmt.Sprintf("ERR unknown type 0x%02x", byte(pkt.Type))
	}
	if !d.Silent {
		d.out.WriteString(resp + "\r\n")
	}
}
