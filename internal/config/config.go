package config

// Config is the root configuration for a chatd instance.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the TCP listener settings.
type ServerConfig struct {
	// Host is the interface to bind. Empty means the address the local
	// hostname resolves to, matching the zero-argument default surface.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WebSocketConfig holds the optional WebSocket gateway settings.
// When enabled, browser clients speaking one text frame per protocol
// line are served by the same session handler as TCP clients.
type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
