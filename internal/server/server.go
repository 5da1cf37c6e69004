package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/linefeed/chatd/internal/config"
	"github.com/linefeed/chatd/internal/protocol"
	"github.com/linefeed/chatd/internal/registry"
	"github.com/linefeed/chatd/internal/router"
	"github.com/linefeed/chatd/internal/session"
)

// Server is the chat service: listeners, registry and router under one
// owner, constructed once and passed explicitly.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	reg registry.Registry
	rt  router.Router

	ln   net.Listener
	wsLn net.Listener
	gw   *wsGateway

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a chat server from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	reg := registry.NewRegistry(logger)
	return &Server{
		cfg:    cfg,
		logger: logger,
		reg:    reg,
		rt:     router.NewRouter(reg, logger),
	}
}

// Start binds the listeners and begins accepting connections. A bind
// failure is fatal to the caller; there is no partial-degraded mode.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	addr, err := s.listenAddr()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	s.ln = ln

	s.wg.Add(1)
	go s.acceptLoop()

	s.logger.Info("chat server listening", "addr", ln.Addr().String())

	if s.cfg.WebSocket.Enabled {
		if err := s.startGateway(); err != nil {
			ln.Close()
			return err
		}
	}

	return nil
}

// Stop announces the shutdown to every registered session, force-closes
// all connections and listeners, and waits for session goroutines.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping chat server")

	if s.cancel != nil {
		s.cancel()
	}

	if s.ln != nil {
		s.ln.Close()
	}
	if s.gw != nil {
		s.gw.shutdown(ctx)
	}

	// Closing each connection unblocks that session's pending read,
	// driving it to Closing.
	s.reg.CloseAll(protocol.ShutdownNotice)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("chat server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("shutdown timeout, forcing exit")
		return ctx.Err()
	}
}

// Addr returns the bound TCP address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Online returns the number of registered sessions.
func (s *Server) Online() int {
	return s.reg.Len()
}

// listenAddr resolves the configured bind address. An empty host means
// the local hostname, matching the zero-configuration surface.
func (s *Server) listenAddr() (string, error) {
	host := s.cfg.Server.Host
	if host == "" {
		name, err := os.Hostname()
		if err != nil {
			return "", fmt.Errorf("resolve hostname: %w", err)
		}
		host = name
	}
	return net.JoinHostPort(host, strconv.Itoa(s.cfg.Server.Port)), nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept failed", "error", err)
			continue
		}

		s.spawn(protocol.NewNetConn(conn))
	}
}

// spawn hands a connection to its own session goroutine. The session ID
// exists before any username does and keys the session's log lines.
func (s *Server) spawn(conn protocol.Conn) {
	id := uuid.New()
	s.logger.Debug("connection accepted",
		"session_id", id,
		"remote_addr", conn.RemoteAddr(),
	)

	h := session.NewHandler(id, conn, s.reg, s.rt, s.logger)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		h.Run()
	}()
}
