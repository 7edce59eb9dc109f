// Package serial provides the serial port link to the firmware.
package serial

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	tarm "github.com/tarm/serial"

	"github.com/robotalks/hidlink/pkg/comm"
)

// idleInterval is the pause after a read returning nothing.
const idleInterval = 10 * time.Millisecond

// openPort is replaced in tests.
var openPort = func(c *tarm.Config) (io.ReadWriteCloser, error) {
	return tarm.OpenPort(c)
}

// Port implements comm.Conn over a byte stream.
type Port struct {
	rwc io.ReadWriteCloser

	dataCh  chan []byte
	errCh   chan error
	done    chan struct{}
	pending []byte
	readErr error
	// serializes ReadLine/Drain.
	readLock sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// Open opens the serial port and waits for the device to settle.
func Open(ctx context.Context, conf Config) (*Port, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	rwc, err := openPort(&tarm.Config{
		Name:        conf.Name,
		Baud:        conf.Baud,
		ReadTimeout: conf.ReadTimeout,
	})
	if err != nil {
		return nil, &comm.TransportError{Op: "open", Err: err}
	}
	glog.Infof("serial %s opened at %d baud", conf.Name, conf.Baud)
	port := NewPort(rwc)
	if conf.Settle > 0 {
		glog.V(2).Infof("waiting %v for device", conf.Settle)
		select {
		case <-ctx.Done():
			port.Close()
			return nil, ctx.Err()
		case <-time.After(conf.Settle):
		}
		if n := port.Drain(); n > 0 {
			glog.V(2).Infof("discarded %d bytes of boot output", n)
		}
	}
	return port, nil
}

// NewPort wraps a stream. Reads happen in the background until Close.
func NewPort(rwc io.ReadWriteCloser) *Port {
	p := &Port{
		rwc:    rwc,
		dataCh: make(chan []byte, 16),
		errCh:  make(chan error, 1),
		done:   make(chan struct{}),
	}
	go p.readLoop()
	return p
}

// Write implements comm.Conn.
func (p *Port) Write(b []byte) (int, error) {
	select {
	case <-p.done:
		return 0, comm.ErrClosed
	default:
	}
	return p.rwc.Write(b)
}

// ReadLine implements comm.Conn. The line is returned without the line
// terminator and surrounding spaces. Whatever arrived before timeout is
// returned if no line terminator was received.
func (p *Port) ReadLine(timeout time.Duration) (string, error) {
	p.readLock.Lock()
	defer p.readLock.Unlock()

	if line, ok := p.takeLine(); ok {
		return line, nil
	}
	if p.readErr != nil {
		return "", p.readErr
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case chunk := <-p.dataCh:
			p.pending = append(p.pending, chunk...)
			if line, ok := p.takeLine(); ok {
				return line, nil
			}
		case err := <-p.errCh:
			p.readErr = err
			return "", err
		case <-p.done:
			return "", comm.ErrClosed
		case <-timer.C:
			line := strings.TrimSpace(string(p.pending))
			p.pending = nil
			return line, nil
		}
	}
}

// Drain discards buffered input and returns the number of bytes dropped.
func (p *Port) Drain() (n int) {
	p.readLock.Lock()
	defer p.readLock.Unlock()
	n, p.pending = len(p.pending), nil
	for {
		select {
		case chunk := <-p.dataCh:
			n += len(chunk)
		default:
			return
		}
	}
}

// Close implements comm.Conn, it's safe to call more than once.
func (p *Port) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.closeErr = p.rwc.Close()
	})
	return p.closeErr
}

func (p *Port) takeLine() (string, bool) {
	i := bytes.IndexByte(p.pending, '\n')
	if i < 0 {
		return "", false
	}
	line := string(p.pending[:i])
	p.pending = p.pending[i+1:]
	return strings.TrimSpace(line), true
}

func (p *Port) readLoop() {
	buf := make([]byte, 64)
	for {
		n, err := p.rwc.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case p.dataCh <- chunk:
			case <-p.done:
				return
			}
		}
		// a timed out read on a serial port reports io.EOF.
		if err != nil && err != io.EOF && !os.IsTimeout(err) {
			select {
			case <-p.done:
			default:
				p.errCh <- err
			}
			return
		}
		if n == 0 {
			select {
			case <-p.done:
				return
			case <-time.After(idleInterval):
			}
		}
	}
}
