package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
server:
  host: 127.0.0.1
  port: 6000
websocket:
  enabled: true
  addr: ":9000"
  path: /chat
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 6000)
	}
	if !cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled = false, want true")
	}
	if cfg.WebSocket.Path != "/chat" {
		t.Errorf("WebSocket.Path = %q, want %q", cfg.WebSocket.Path, "/chat")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_CHAT_HOST", "10.0.0.5")

	yaml := `
server:
  host: ${TEST_CHAT_HOST}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "10.0.0.5" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "10.0.0.5")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "server: {}\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.WebSocket.Addr != DefaultWSAddr {
		t.Errorf("WebSocket.Addr = %q, want default %q", cfg.WebSocket.Addr, DefaultWSAddr)
	}
	if cfg.WebSocket.Path != DefaultWSPath {
		t.Errorf("WebSocket.Path = %q, want default %q", cfg.WebSocket.Path, DefaultWSPath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	cfg, err := LoadAndValidate(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "invalid port",
			cfg:     Config{Server: ServerConfig{Port: 0}, Log: LogConfig{Level: "info"}},
			wantErr: "server.port must be between 1 and 65535, got 0",
		},
		{
			name: "websocket path without slash",
			cfg: Config{
				Server:    ServerConfig{Port: 5173},
				WebSocket: WebSocketConfig{Enabled: true, Addr: ":8080", Path: "ws"},
				Log:       LogConfig{Level: "info"},
			},
			wantErr: `websocket.path must start with '/', got "ws"`,
		},
		{
			name: "bad log level",
			cfg: Config{
				Server: ServerConfig{Port: 5173},
				Log:    LogConfig{Level: "verbose"},
			},
			wantErr: `log.level must be one of debug, info, warn, error, got "verbose"`,
		},
		{
			name:    "valid defaults",
			cfg:     *Default(),
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		got := LogConfig{Level: tt.level}.SlogLevel().String()
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
