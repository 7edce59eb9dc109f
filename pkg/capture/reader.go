package capture

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/robotalks/hidlink/pkg/comm"
)

// Reader reads records written by Writer.
type Reader struct {
	r       io.Reader
	decoder *cbor.Decoder
}

// NewReader creates a Reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, decoder: NewDecoder(r)}
}

// Open opens a capture file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f), nil
}

// Next returns the next record, io.EOF at the end of the stream.
func (r *Reader) Next() (rec Record, err error) {
	err = r.decoder.Decode(&rec)
	return
}

// Packets reads all remaining records and decodes their frames.
func (r *Reader) Packets() ([]comm.Packet, error) {
	var pkts []comm.Packet
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return pkts, nil
		}
		if err != nil {
			return pkts, err
		}
		pkt, err := comm.Decode(rec.Frame)
		if err != nil {
			return pkts, err
		}
		pkts = append(pkts, pkt)
	}
}

// Close closes the underlying reader if possible.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
