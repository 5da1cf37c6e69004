package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/linefeed/chatd/internal/protocol"
)

// Session represents one connected client. The username is immutable
// once assigned; the connection is exclusively owned by the session.
type Session struct {
	ID         uuid.UUID
	Username   string
	RemoteAddr string

	conn      protocol.Conn
	closeOnce sync.Once
}

// NewSession binds a connection to a registered username.
func NewSession(id uuid.UUID, username string, conn protocol.Conn) *Session {
	return &Session{
		ID:         id,
		Username:   username,
		RemoteAddr: conn.RemoteAddr(),
		conn:       conn,
	}
}

// Send writes one protocol line to the client. A failure means the
// client is gone: there is no retry or queueing beyond the transport.
func (s *Session) Send(line string) error {
	return s.conn.WriteLine(line)
}

// Close closes the connection at most once. Pending reads on the
// session's goroutine unblock with an error.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
	})
}
