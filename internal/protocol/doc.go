// Package protocol implements the wire protocol of the chat service.
//
// The protocol is newline-delimited UTF-8 text, one command or message
// per line:
//   - parsing of client lines into commands (/pm, /list, /help, /quit,
//     plain broadcast text)
//   - formatting of server lines (timestamps, system notices, private
//     message relays, banners)
//   - line-framed connection adapters for raw TCP sockets and for
//     WebSocket connections carrying one text frame per line
package protocol
