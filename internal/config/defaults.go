package config

// Default values for optional configuration fields.
const (
	DefaultPort     = 5173
	DefaultWSAddr   = ":8080"
	DefaultWSPath   = "/ws"
	DefaultLogLevel = "info"
)

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.WebSocket.Addr == "" {
		c.WebSocket.Addr = DefaultWSAddr
	}
	if c.WebSocket.Path == "" {
		c.WebSocket.Path = DefaultWSPath
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Default returns a configuration with every field set to its default.
// chatd runs with it when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
