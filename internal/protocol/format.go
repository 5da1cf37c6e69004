package protocol

import (
	"fmt"
	"strings"
	"time"
)

// Fatal handshake errors, sent before registration and followed by an
// immediate close. Clients treat the "ERROR:" prefix as terminal.
const (
	UsernameTakenError   = "ERROR: Username already taken. Please try again with a different name."
	UsernameInvalidError = "ERROR: Username must not contain spaces or start with '/'."
)

// ShutdownNotice is sent best-effort to every session before the server exits.
const ShutdownNotice = "[SYSTEM] Server is shutting down. Goodbye!"

var rule = strings.Repeat("=", 50)

// Stamp prefixes text with a human-readable timestamp. Stamping happens
// at the moment of send, not at the moment of original authorship.
func Stamp(t time.Time, text string) string {
	return fmt.Sprintf("[%s] %s", t.Format("15:04:05"), text)
}

// BroadcastText is the unstamped relay form of a chat message.
func BroadcastText(username, text string) string {
	return fmt.Sprintf("%s: %s", username, text)
}

// JoinNotice is the unstamped system notice for a user joining.
func JoinNotice(username string) string {
	return fmt.Sprintf("[SYSTEM] %s has joined the chat", username)
}

// LeaveNotice is the unstamped system notice for a user leaving.
func LeaveNotice(username string) string {
	return fmt.Sprintf("[SYSTEM] %s has left the chat", username)
}

// PrivateRelay is the line the recipient of a /pm sees.
func PrivateRelay(t time.Time, sender, body string) string {
	return Stamp(t, fmt.Sprintf("[PM from %s] %s", sender, body))
}

// PrivateEcho is the confirmation line the sender of a /pm sees.
func PrivateEcho(t time.Time, recipient, body string) string {
	return Stamp(t, fmt.Sprintf("[PM to %s] %s", recipient, body))
}

// UserNotFound reports a /pm to an unknown or offline recipient.
func UserNotFound(t time.Time, recipient string) string {
	return Stamp(t, fmt.Sprintf("[ERROR] User '%s' not found or offline", recipient))
}

// PrivateUsage reports a malformed /pm line.
func PrivateUsage(t time.Time) string {
	return Stamp(t, "[ERROR] Usage: /pm <username> <message>")
}

// Welcome is the banner sent to a user right after registration.
func Welcome(username string) string {
	return fmt.Sprintf("\n%s\nWelcome to the chat server, %s!\nType '/help' for commands\n%s",
		rule, username, rule)
}

// Roster is the online-users block, including the requester itself.
func Roster(usernames []string) string {
	return fmt.Sprintf("\n%s\nOnline Users (%d): %s\n%s",
		rule, len(usernames), strings.Join(usernames, ", "), rule)
}

// Help is the static command summary.
func Help() string {
	return fmt.Sprintf(`
%s
CHAT COMMANDS:
  /pm <username> <message>  - Send private message
  /list                     - Show online users
  /help                     - Show this help
  /quit                     - Leave the chat

Just type your message to broadcast to everyone!
%s`, rule, rule)
}
