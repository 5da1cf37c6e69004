package registry

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry manages the authoritative mapping of online usernames to
// their sessions.
type Registry interface {
	// Register inserts a session under username. It returns false and
	// performs no mutation if the username is already present; the
	// presence check and the insert are one critical section.
	Register(username string, s *Session) bool

	// Remove deletes a username and closes its connection. Removing an
	// absent username is a no-op.
	Remove(username string)

	// Get returns the session for a username, if registered.
	Get(username string) (*Session, bool)

	// Snapshot returns a consistent point-in-time view of all
	// registered usernames, sorted for stable rosters.
	Snapshot() []string

	// ForEachExcept applies fn to every current session except the
	// excluded username, under the same mutex used by mutation, so the
	// iteration sees a stable set. fn must not call back into the
	// registry.
	ForEachExcept(excluded string, fn func(*Session))

	// Len returns the number of registered sessions.
	Len() int

	// CloseAll sends notice best-effort to every session, closes every
	// connection, and empties the registry. Used on server shutdown.
	CloseAll(notice string)
}

// registryImpl implements the Registry interface.
type registryImpl struct {
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Session Registry.
func NewRegistry(logger *slog.Logger) Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &registryImpl{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

func (r *registryImpl) Register(username string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sessions[username]; taken {
		return false
	}
	r.sessions[username] = s

	r.logger.Debug("session registered",
		"username", username,
		"session_id", s.ID,
		"remote_addr", s.RemoteAddr,
		"online", len(r.sessions),
	)
	return true
}

func (r *registryImpl) Remove(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[username]
	if !ok {
		return
	}
	s.Close()
	delete(r.sessions, username)

	r.logger.Debug("session removed",
		"username", username,
		"session_id", s.ID,
		"online", len(r.sessions),
	)
}

func (r *registryImpl) Get(username string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[username]
	return s, ok
}

func (r *registryImpl) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.sessions))
	for username := range r.sessions {
		names = append(names, username)
	}
	sort.Strings(names)
	return names
}

func (r *registryImpl) ForEachExcept(excluded string, fn func(*Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for username, s := range r.sessions {
		if username == excluded {
			continue
		}
		fn(s)
	}
}

func (r *registryImpl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *registryImpl) CloseAll(notice string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for username, s := range r.sessions {
		if notice != "" {
			if err := s.Send(notice); err != nil {
				r.logger.Debug("shutdown notice not delivered",
					"username", username,
					"error", err,
				)
			}
		}
		s.Close()
		delete(r.sessions, username)
	}
}
