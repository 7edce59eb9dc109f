package comm

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/hidlink/pkg/keys"
)

// DefaultResponseTimeout is how long Send waits for a response line.
const DefaultResponseTimeout = time.Second

// Conn is the link to the firmware.
type Conn interface {
	// Write sends raw bytes.
	Write([]byte) (int, error)
	// ReadLine reads one line of text, it returns an empty string
	// if nothing arrives before timeout.
	ReadLine(timeout time.Duration) (string, error)
	// Close releases the link.
	Close() error
}

// SendResult is the outcome of a single Send.
type SendResult struct {
	Time     time.Time
	Packet   Packet
	Sent     bool
	Response string
	Err      error
	Duration time.Duration
}

// Observer is notified after every Send.
type Observer interface {
	PacketSent(*SendResult)
}

// PacketSentFunc is func type of Observer.
type PacketSentFunc func(*SendResult)

// PacketSent implements Observer.
func (f PacketSentFunc) PacketSent(res *SendResult) {
	f(res)
}

// Observers combines multiple observers, nil ones are skipped.
func Observers(observers ...Observer) Observer {
	var list multiObserver
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) PacketSent(res *SendResult) {
	for _, o := range m {
		o.PacketSent(res)
	}
}

// Sender writes packets to a Conn, one at a time.
type Sender struct {
	Conn Conn
	// ResponseTimeout bounds the response read after each packet,
	// 0 skips reading.
	ResponseTimeout time.Duration
	// OnResponse receives non-empty response lines.
	OnResponse func(string)
	Observer   Observer

	lock sync.Mutex
}

// NewSender creates a Sender wrapping the conn.
func NewSender(conn Conn) *Sender {
	return &Sender{
		Conn:            conn,
		ResponseTimeout: DefaultResponseTimeout,
	}
}

// Send writes the packet and optionally waits for a response line.
// A failed write returns a *TransportError and the packet is not
// considered sent.
func (s *Sender) Send(pkt Packet) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	res := &SendResult{Time: time.Now(), Packet: pkt}
	s.send(res)
	res.Duration = time.Since(res.Time)
	if o := s.Observer; o != nil {
		o.PacketSent(res)
	}
	return res.Response, res.Err
}

// SendCommand encodes and sends a packet, see Encode.
func (s *Sender) SendCommand(cmd keys.CommandType, data1, data2 int, data3 byte) (string, error) {
	return s.Send(Encode(cmd, data1, data2, data3))
}

// Close closes the underlying conn.
func (s *Sender) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.Conn == nil {
		return nil
	}
	err := s.Conn.Close()
	s.Conn = nil
	return err
}

func (s *Sender) send(res *SendResult) {
	if s.Conn == nil {
		res.Err = &TransportError{Op: "write", Err: ErrClosed}
		return
	}
	if _, err := res.Packet.WriteTo(s.Conn); err != nil {
		res.Err = &TransportError{Op: "write", Err: err}
		glog.Errorf("send %s failed: %v", res.Packet, err)
		return
	}
	res.Sent = true
	glog.V(4).Infof("SND %s", res.Packet)

	if s.ResponseTimeout <= 0 {
		return
	}
	line, err := s.Conn.ReadLine(s.ResponseTimeout)
	if err != nil {
		res.Err = &TransportError{Op: "read", Err: err}
		return
	}
	if line == "" {
		glog.V(4).Info("no response")
		return
	}
	res.Response = line
	if fn := s.OnResponse; fn != nil {
		fn(line)
	} else {
		glog.Infof("device response: %s", line)
	}
}
