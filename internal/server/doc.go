// Package server implements the Acceptor component.
//
// The Acceptor:
//   - Owns the TCP listener, the Session Registry and the Message
//     Router explicitly; there is no ambient global state
//   - Spawns one goroutine per accepted connection running the Session
//     Handler; a session failure never reaches the accept loop or any
//     other session
//   - Optionally runs a WebSocket gateway feeding the same handler
//   - On shutdown sends a best-effort notice to every registered
//     session and force-closes all connections, unblocking pending reads
package server
