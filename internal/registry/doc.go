// Package registry implements the Session Registry component.
//
// The Session Registry:
//   - Maps each online username to its session, keys unique
//   - Holds a username if and only if its connection is open and the
//     handshake completed
//   - Serializes every read and mutation behind a single mutex, so the
//     duplicate-username check-and-insert is one atomic step and
//     broadcast iteration sees a stable set
package registry
