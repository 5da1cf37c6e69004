// Package router implements the Message Router component.
//
// The Message Router:
//   - Turns a parsed command into zero or more send operations against
//     the Session Registry
//   - Stamps every outgoing system and broadcast line at the moment of
//     send
//   - Removes unreachable recipients from the registry after a
//     broadcast pass completes, never mid-iteration
package router
