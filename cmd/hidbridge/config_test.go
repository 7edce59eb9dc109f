package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
serial:
  name: /dev/ttyUSB1
  baud: 115200
  settle: 500ms
response-timeout: 2s
capture: frames.cbor
bridge:
  broker: mqtt://broker:1883/office/
  id: desk
  meta:
    description: front desk
`

func withDefaults(t *testing.T) *flag.FlagSet {
	saved, savedFile := defaultConfig, configFile
	t.Cleanup(func() {
		defaultConfig, configFile = saved, savedFile
	})
	fs := flag.NewFlagSet("hidbridge", flag.ContinueOnError)
	SetupFlags(fs)
	return fs
}

func writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "hidbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	fs := withDefaults(t)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, LoadConfigFile(fs, writeConfig(t)))

	conf := NewConfig()
	assert.Equal(t, "/dev/ttyUSB1", conf.Serial.Name)
	assert.Equal(t, 115200, conf.Serial.Baud)
	assert.Equal(t, 500*time.Millisecond, conf.Serial.Settle)
	assert.Equal(t, 2*time.Second, conf.ResponseTimeout)
	assert.Equal(t, "frames.cbor", conf.Capture)
	assert.Equal(t, "mqtt://broker:1883/office/", conf.Bridge.BrokerURL)
	assert.Equal(t, "desk", conf.Bridge.ID)
	assert.Equal(t, "front desk", conf.Bridge.Meta.Description)
	require.NoError(t, conf.Serial.Validate())
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	fs := withDefaults(t)
	require.NoError(t, fs.Parse([]string{"-baud", "9600", "-id", "lab", "-simulate"}))
	require.NoError(t, LoadConfigFile(fs, writeConfig(t)))

	conf := NewConfig()
	assert.Equal(t, 9600, conf.Serial.Baud)
	assert.Equal(t, "lab", conf.Bridge.ID)
	assert.True(t, conf.Simulate)
	assert.Equal(t, "/dev/ttyUSB1", conf.Serial.Name)
}

func TestLoadConfigFileErrors(t *testing.T) {
	fs := withDefaults(t)
	require.Error(t, LoadConfigFile(fs, filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial: [\n"), 0644))
	require.Error(t, LoadConfigFile(fs, path))
}
