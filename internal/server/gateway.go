package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/linefeed/chatd/internal/protocol"
)

var upgrader = websocket.Upgrader{
	// The chat protocol performs its own username handshake; any origin
	// may connect, exactly as with a raw TCP client.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsGateway serves WebSocket clients speaking one text frame per
// protocol line and feeds them to the same session handler the TCP
// path uses.
type wsGateway struct {
	srv    *http.Server
	logger *slog.Logger
}

func (s *Server) startGateway() error {
	ln, err := net.Listen("tcp", s.cfg.WebSocket.Addr)
	if err != nil {
		return fmt.Errorf("bind websocket %s: %w", s.cfg.WebSocket.Addr, err)
	}
	s.wsLn = ln

	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.WebSocket.Path, s.handleUpgrade)

	s.gw = &wsGateway{
		srv:    &http.Server{Handler: mux},
		logger: s.logger,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.gw.srv.Serve(ln); err != http.ErrServerClosed {
			s.logger.Error("websocket gateway error", "error", err)
		}
	}()

	s.logger.Info("websocket gateway listening",
		"addr", ln.Addr().String(),
		"path", s.cfg.WebSocket.Path,
	)
	return nil
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		return
	}

	// Upgrade hijacked the connection; from here the session owns it.
	s.spawn(protocol.NewWebSocketConn(conn))
}

// WSAddr returns the bound gateway address, or nil when disabled.
func (s *Server) WSAddr() net.Addr {
	if s.wsLn == nil {
		return nil
	}
	return s.wsLn.Addr()
}

func (g *wsGateway) shutdown(ctx context.Context) {
	if err := g.srv.Shutdown(ctx); err != nil {
		g.logger.Warn("websocket gateway shutdown", "error", err)
	}
}
