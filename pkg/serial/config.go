package serial

import (
	"time"

	"github.com/robotalks/hidlink/pkg/comm"
)

// Defaults for Config.
const (
	DefaultBaud        = 9600
	DefaultReadTimeout = 100 * time.Millisecond
	// DefaultSettle is the time a Pro Micro needs after the port opens
	// (opening resets the board).
	DefaultSettle = 2 * time.Second
)

// Config holds serial port configuration.
type Config struct {
	// Name is the device path (e.g., "/dev/ttyUSB0", "COM3").
	Name string `yaml:"name"`
	// Baud rate.
	Baud int `yaml:"baud"`
	// ReadTimeout is the polling granularity of the underlying port,
	// not the response timeout.
	ReadTimeout time.Duration `yaml:"read-timeout"`
	// Settle is the wait after opening before the port is usable.
	Settle time.Duration `yaml:"settle"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
		Settle:      DefaultSettle,
	}
}

var standardBauds = map[int]bool{
	300: true, 600: true, 1200: true, 2400: true, 4800: true,
	9600: true, 14400: true, 19200: true, 28800: true, 38400: true,
	57600: true, 115200: true, 230400: true, 250000: true,
	460800: true, 500000: true, 921600: true, 1000000: true,
}

// Validate checks the configuration, errors are *comm.ConfigurationError.
func (c Config) Validate() error {
	if c.Name == "" {
		return &comm.ConfigurationError{Field: "port", Value: `""`, Reason: "device name required"}
	}
	if !standardBauds[c.Baud] {
		return &comm.ConfigurationError{Field: "baud rate", Value: c.Baud, Reason: "unsupported"}
	}
	if c.ReadTimeout < 0 {
		return &comm.ConfigurationError{Field: "read timeout", Value: c.ReadTimeout, Reason: "negative"}
	}
	if c.Settle < 0 {
		return &comm.ConfigurationError{Field: "settle time", Value: c.Settle, Reason: "negative"}
	}
	return nil
}
