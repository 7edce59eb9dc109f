package capture

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/golang/glog"

	"github.com/robotalks/hidlink/pkg/comm"
)

// Writer writes a Record for every packet passed to the sender.
// It is safe for concurrent use.
type Writer struct {
	w       io.Writer
	encoder *cbor.Encoder
	lock    sync.Mutex
	closed  bool
}

// NewWriter creates a Writer on w. If w is an io.Closer, Close closes it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, encoder: NewEncoder(w)}
}

// Create opens path for appending records, creating it if necessary.
func Create(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}

// Write encodes a record. Writes after Close are ignored.
func (w *Writer) Write(rec Record) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.closed {
		return nil
	}
	return w.encoder.Encode(rec)
}

// PacketSent implements comm.Observer. Errors are only logged.
func (w *Writer) PacketSent(res *comm.SendResult) {
	rec := Record{
		Time:     res.Time,
		Frame:    res.Packet.Bytes(),
		Sent:     res.Sent,
		Response: res.Response,
		Duration: res.Duration,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	if err := w.Write(rec); err != nil {
		glog.Warningf("capture %s: %v", res.Packet, err)
	}
}

// Close stops recording and closes the underlying writer if possible.
func (w *Writer) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ comm.Observer = (*Writer)(nil)
