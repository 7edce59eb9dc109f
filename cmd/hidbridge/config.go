package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/hidlink/pkg/bridge"
	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/serial"
)

// Config defines the configurations of the daemon.
type Config struct {
	Serial          serial.Config `yaml:"serial"`
	Simulate        bool          `yaml:"simulate"`
	ResponseTimeout time.Duration `yaml:"response-timeout"`
	// Capture is the file recording sent frames, empty to disable.
	Capture string `yaml:"capture"`
	// MetricsAddr is the listen address of /metrics, empty to disable.
	MetricsAddr string        `yaml:"metrics-addr"`
	Bridge      bridge.Config `yaml:"bridge"`
}

var (
	defaultConfig = Config{
		Serial:          serial.DefaultConfig(defaultPortName()),
		ResponseTimeout: comm.DefaultResponseTimeout,
		Bridge:          *bridge.NewConfig(),
	}

	configFile string
)

func defaultPortName() string {
	if val := os.Getenv("HIDLINK_PORT"); val != "" {
		return val
	}
	return "/dev/ttyACM0"
}

// SetupFlags sets command line flags on fs.
func SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&configFile, "config", configFile, "YAML config file, explicitly set flags take precedence")
	fs.StringVar(&defaultConfig.Serial.Name, "port", defaultConfig.Serial.Name, "Serial port of the device")
	fs.IntVar(&defaultConfig.Serial.Baud, "baud", defaultConfig.Serial.Baud, "Baud rate")
	fs.DurationVar(&defaultConfig.Serial.Settle, "settle", defaultConfig.Serial.Settle, "Wait time after opening the port")
	fs.BoolVar(&defaultConfig.Simulate, "simulate", defaultConfig.Simulate, "Use a simulated device instead of the serial port")
	fs.DurationVar(&defaultConfig.ResponseTimeout, "response-timeout", defaultConfig.ResponseTimeout, "Wait time for device response, 0 to skip")
	fs.StringVar(&defaultConfig.Capture, "capture", defaultConfig.Capture, "Record sent frames to this file (CBOR)")
	fs.StringVar(&defaultConfig.MetricsAddr, "metrics-addr", defaultConfig.MetricsAddr, "Serve Prometheus metrics on this address")
	defaultConfig.Bridge.BindFlags(fs)
}

// LoadConfigFile merges the YAML file into the defaults. Flags set on
// the command line are applied again afterwards.
func LoadConfigFile(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	if err := yaml.Unmarshal(data, &defaultConfig); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	for name, val := range explicit {
		if err := fs.Set(name, val); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
