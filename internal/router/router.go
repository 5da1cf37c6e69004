package router

import (
	"log/slog"
	"time"

	"github.com/linefeed/chatd/internal/protocol"
	"github.com/linefeed/chatd/internal/registry"
)

// Router delivers messages to one, many, or all sessions without
// exposing registry internals to the session handler.
type Router interface {
	// SendToAll stamps text and delivers it to every registered session
	// except excludeUsername. Recipients whose write fails are removed
	// from the registry after the pass completes.
	SendToAll(text, excludeUsername string)

	// SendPrivate delivers a formatted private message to recipient and
	// a confirmation echo to sender. It returns false and sends nothing
	// when the recipient is not registered. The result means "recipient
	// existed": a write failure after a successful lookup is logged,
	// not surfaced.
	SendPrivate(sender, recipient, text string) bool

	// SendRoster sends the requesting session the list of all online
	// usernames, including itself, and the count.
	SendRoster(toUsername string)
}

// routerImpl implements the Router interface.
type routerImpl struct {
	reg    registry.Registry
	logger *slog.Logger
}

// NewRouter creates a Message Router over a Session Registry.
func NewRouter(reg registry.Registry, logger *slog.Logger) Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &routerImpl{
		reg:    reg,
		logger: logger,
	}
}

func (r *routerImpl) SendToAll(text, excludeUsername string) {
	line := protocol.Stamp(time.Now(), text)

	// Removing a registry entry mid-iteration would need reentrant
	// locking, so failed recipients are collected and removed after
	// the pass.
	var failed []string
	r.reg.ForEachExcept(excludeUsername, func(s *registry.Session) {
		if err := s.Send(line); err != nil {
			r.logger.Warn("broadcast delivery failed",
				"username", s.Username,
				"error", err,
			)
			failed = append(failed, s.Username)
		}
	})

	for _, username := range failed {
		r.reg.Remove(username)
	}
}

func (r *routerImpl) SendPrivate(sender, recipient, text string) bool {
	to, ok := r.reg.Get(recipient)
	if !ok {
		return false
	}

	now := time.Now()
	if err := to.Send(protocol.PrivateRelay(now, sender, text)); err != nil {
		r.logger.Warn("private message delivery failed",
			"from", sender,
			"to", recipient,
			"error", err,
		)
	}

	if from, ok := r.reg.Get(sender); ok {
		if err := from.Send(protocol.PrivateEcho(now, recipient, text)); err != nil {
			r.logger.Warn("private message echo failed",
				"from", sender,
				"to", recipient,
				"error", err,
			)
		}
	}

	r.logger.Debug("private message", "from", sender, "to", recipient)
	return true
}

func (r *routerImpl) SendRoster(toUsername string) {
	to, ok := r.reg.Get(toUsername)
	if !ok {
		return
	}

	if err := to.Send(protocol.Roster(r.reg.Snapshot())); err != nil {
		r.logger.Warn("roster delivery failed",
			"username", toUsername,
			"error", err,
		)
	}
}
