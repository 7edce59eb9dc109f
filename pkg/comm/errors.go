package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrValueRange indicates a value can't be encoded by EncodeStrict.
	ErrValueRange = errors.New("value out of range")
	// ErrFrameLength indicates a frame is not exactly PacketSize bytes.
	ErrFrameLength = errors.New("invalid frame length")
	// ErrFrameStart indicates a frame doesn't begin with StartByte.
	ErrFrameStart = errors.New("invalid start byte")
	// ErrFrameEnd indicates a frame doesn't end with EndByte.
	ErrFrameEnd = errors.New("invalid end byte")
	// ErrClosed indicates the connection has been closed.
	ErrClosed = errors.New("connection closed")
)

// TransportError wraps failures of the underlying link.
type TransportError struct {
	// Op is one of "open", "write", "read" or "close".
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an invalid transport setting.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
