// Package capture records frames sent to the device as a CBOR stream.
package capture

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	if encMode, err = encOpts.EncMode(); err != nil {
		panic(fmt.Sprintf("capture CBOR encoder mode: %v", err))
	}
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	if decMode, err = decOpts.DecMode(); err != nil {
		panic(fmt.Sprintf("capture CBOR decoder mode: %v", err))
	}
}

// Record is one captured frame.
type Record struct {
	Time     time.Time     `cbor:"1,keyasint"`
	Frame    []byte        `cbor:"2,keyasint"`
	Sent     bool          `cbor:"3,keyasint"`
	Response string        `cbor:"4,keyasint,omitempty"`
	Error    string        `cbor:"5,keyasint,omitempty"`
	Duration time.Duration `cbor:"6,keyasint,omitempty"`
}

// Encode encodes a Record.
func Encode(rec Record) ([]byte, error) {
	return encMode.Marshal(rec)
}

// Decode decodes a Record.
func Decode(data []byte) (rec Record, err error) {
	err = decMode.Unmarshal(data, &rec)
	return
}

// NewEncoder creates a Record encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a Record decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
