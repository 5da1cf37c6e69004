package session

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/linefeed/chatd/internal/protocol"
	"github.com/linefeed/chatd/internal/registry"
	"github.com/linefeed/chatd/internal/router"
)

// Handler owns one connection for its whole lifetime.
type Handler struct {
	id     uuid.UUID
	conn   protocol.Conn
	reg    registry.Registry
	router router.Router
	logger *slog.Logger
}

// NewHandler creates a handler for one accepted connection. The id is
// assigned by the acceptor before any username exists and keys every
// log line of the session.
func NewHandler(id uuid.UUID, conn protocol.Conn, reg registry.Registry, rt router.Router, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		id:     id,
		conn:   conn,
		reg:    reg,
		router: rt,
		logger: logger.With("session_id", id),
	}
}

// Run executes the session state machine to completion and returns when
// the session is closed. It never panics across the acceptor.
func (h *Handler) Run() {
	sess, ok := h.handshake()
	if !ok {
		h.conn.Close()
		return
	}

	h.logger.Info("user joined",
		"username", sess.Username,
		"remote_addr", sess.RemoteAddr,
	)

	h.serve(sess.Username)

	// Closing: remove self first, then announce. Self is already gone
	// from the registry, so the departure broadcast needs no exclusion.
	h.reg.Remove(sess.Username)
	h.router.SendToAll(protocol.LeaveNotice(sess.Username), "")

	h.logger.Info("user left", "username", sess.Username)
}

// handshake reads the single username line and registers the session.
// On any rejection the connection is left for Run to close; nothing was
// broadcast and nothing remains in the registry.
func (h *Handler) handshake() (*registry.Session, bool) {
	line, err := h.conn.ReadLine()
	if err != nil {
		h.logger.Debug("connection closed before handshake", "error", err)
		return nil, false
	}

	// NFC-normalize so visually identical names cannot coexist.
	username := norm.NFC.String(strings.TrimSpace(line))

	switch {
	case username == "":
		// Silent drop: the peer is not yet distinguishable from a bad
		// actor, so no error line is owed.
		h.logger.Info("empty username, dropping connection",
			"remote_addr", h.conn.RemoteAddr(),
		)
		return nil, false

	case strings.ContainsRune(username, ' ') || strings.HasPrefix(username, "/"):
		h.conn.WriteLine(protocol.UsernameInvalidError)
		h.logger.Info("invalid username, connection rejected",
			"username", username,
			"remote_addr", h.conn.RemoteAddr(),
		)
		return nil, false
	}

	sess := registry.NewSession(h.id, username, h.conn)
	if !h.reg.Register(username, sess) {
		h.conn.WriteLine(protocol.UsernameTakenError)
		h.logger.Info("username already taken, connection rejected",
			"username", username,
			"remote_addr", h.conn.RemoteAddr(),
		)
		return nil, false
	}

	// Welcome the new user, announce the join to everyone else, then
	// show who is online. Write failures here surface on the next read.
	h.conn.WriteLine(protocol.Welcome(username))
	h.router.SendToAll(protocol.JoinNotice(username), username)
	h.router.SendRoster(username)

	return sess, true
}

// serve is the Active state: one read, one command, repeat. Returning
// transitions to Closing.
func (h *Handler) serve(username string) {
	for {
		line, err := h.conn.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				h.logger.Debug("read failed", "username", username, "error", err)
			}
			return
		}

		cmd, err := protocol.Parse(line)
		if err != nil {
			// Malformed /pm; tell the sender how to hold it.
			if werr := h.conn.WriteLine(protocol.PrivateUsage(time.Now())); werr != nil {
				return
			}
			continue
		}

		switch cmd.Kind {
		case protocol.KindNone:
			// blank line

		case protocol.KindQuit:
			return

		case protocol.KindList:
			h.router.SendRoster(username)

		case protocol.KindHelp:
			if werr := h.conn.WriteLine(protocol.Help()); werr != nil {
				return
			}

		case protocol.KindPrivate:
			if !h.router.SendPrivate(username, cmd.Recipient, cmd.Body) {
				if werr := h.conn.WriteLine(protocol.UserNotFound(time.Now(), cmd.Recipient)); werr != nil {
					return
				}
			}

		case protocol.KindBroadcast:
			h.logger.Debug("broadcast", "username", username, "text", cmd.Body)
			h.router.SendToAll(protocol.BroadcastText(username, cmd.Body), username)
		}
	}
}
