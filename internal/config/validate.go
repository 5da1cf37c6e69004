package config

import (
	"fmt"
	"strings"
)

// Validate checks that all values are valid after defaults are applied.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.WebSocket.Enabled {
		if c.WebSocket.Addr == "" {
			return fmt.Errorf("websocket.addr is required when websocket.enabled is true")
		}
		if !strings.HasPrefix(c.WebSocket.Path, "/") {
			return fmt.Errorf("websocket.path must start with '/', got %q", c.WebSocket.Path)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}
