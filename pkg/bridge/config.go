package bridge

import (
	"flag"
	"os"

	"github.com/denisbrodbeck/machineid"
)

// Config configures the Bridge.
type Config struct {
	// BrokerURL specifies the MQTT broker and topic prefix,
	// e.g. mqtt://host:port/topic-prefix/
	BrokerURL string `yaml:"broker"`
	// ID identifies this bridge in topics.
	ID   string `yaml:"id"`
	Meta Meta   `yaml:"meta"`
}

// Meta is published retained on <id>/meta while the bridge is up.
type Meta struct {
	Description string            `json:"description,omitempty" yaml:"description"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels"`
	Port        string            `json:"port,omitempty" yaml:"-"`
}

// appID protects the raw machine ID.
const appID = "hidlink"

var defaultConfig = Config{
	BrokerURL: "mqtt://localhost:1883/hid/",
	ID:        appID,
}

func init() {
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
	if id, err := machineid.ProtectedID(appID); err == nil && len(id) >= 12 {
		defaultConfig.ID = id[:12]
	}
}

// BindFlags binds command line flags to c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.BrokerURL, "mqtt", c.BrokerURL, "MQTT broker URL")
	fs.StringVar(&c.ID, "id", c.ID, "Bridge ID used in topics")
	fs.StringVar(&c.Meta.Description, "description", c.Meta.Description, "Bridge description")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// CommandTopic is where commands are received.
func (c *Config) CommandTopic() string { return c.ID + "/cmd" }

// ReplyTopic is where command results are published.
func (c *Config) ReplyTopic() string { return c.ID + "/reply" }

// MetaTopic holds the retained Meta.
func (c *Config) MetaTopic() string { return c.ID + "/meta" }
