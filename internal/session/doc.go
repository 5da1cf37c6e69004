// Package session implements the per-connection Session Handler.
//
// The Session Handler:
//   - Drives one connection through Handshaking, Active, Closing, Closed
//   - Reads exactly one line as the candidate username, then one line
//     per command while active
//   - Invokes the Message Router for broadcasts, private messages and
//     rosters
//   - Recovers any mid-session I/O failure locally; nothing propagates
//     to the acceptor or to other sessions
package session
