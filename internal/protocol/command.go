package protocol

import (
	"errors"
	"strings"
)

// Kind discriminates what a client line asks for.
type Kind int

const (
	// KindNone is a blank line; it carries nothing and is skipped.
	KindNone Kind = iota

	// KindBroadcast is plain text relayed to every other user.
	KindBroadcast

	// KindPrivate is a /pm addressed to a single user.
	KindPrivate

	// KindList requests the roster of online users.
	KindList

	// KindHelp requests the command summary.
	KindHelp

	// KindQuit requests a graceful disconnect.
	KindQuit
)

// ErrPrivateUsage reports a /pm line with fewer than three fields.
var ErrPrivateUsage = errors.New("usage: /pm <username> <message>")

// Command is one parsed client line.
type Command struct {
	Kind      Kind
	Recipient string // private messages only
	Body      string // broadcast text or private message body
}

// Parse interprets one client line as a command.
//
// A /pm line splits into at most three fields; the remainder is the
// message body and may itself contain spaces (it is not re-split).
// Unknown slash-commands are not an error: like any other non-empty
// line they fall through to broadcast text.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return Command{Kind: KindNone}, nil

	case strings.HasPrefix(line, "/pm "):
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 3 {
			return Command{}, ErrPrivateUsage
		}
		return Command{Kind: KindPrivate, Recipient: parts[1], Body: parts[2]}, nil

	case line == "/list":
		return Command{Kind: KindList}, nil

	case line == "/help":
		return Command{Kind: KindHelp}, nil

	case line == "/quit":
		return Command{Kind: KindQuit}, nil

	default:
		return Command{Kind: KindBroadcast, Body: line}, nil
	}
}
