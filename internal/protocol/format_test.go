package protocol

import (
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)

func TestStamp(t *testing.T) {
	got := Stamp(testTime, "alice: hello")
	want := "[14:30:05] alice: hello"
	if got != want {
		t.Errorf("Stamp = %q, want %q", got, want)
	}
}

func TestPrivateRelayAndEcho(t *testing.T) {
	relay := PrivateRelay(testTime, "bob", "secret")
	if relay != "[14:30:05] [PM from bob] secret" {
		t.Errorf("PrivateRelay = %q", relay)
	}

	echo := PrivateEcho(testTime, "alice", "secret")
	if echo != "[14:30:05] [PM to alice] secret" {
		t.Errorf("PrivateEcho = %q", echo)
	}
}

func TestNotices(t *testing.T) {
	if got := JoinNotice("alice"); got != "[SYSTEM] alice has joined the chat" {
		t.Errorf("JoinNotice = %q", got)
	}
	if got := LeaveNotice("alice"); got != "[SYSTEM] alice has left the chat" {
		t.Errorf("LeaveNotice = %q", got)
	}
	if got := UserNotFound(testTime, "carol"); got != "[14:30:05] [ERROR] User 'carol' not found or offline" {
		t.Errorf("UserNotFound = %q", got)
	}
	if got := PrivateUsage(testTime); got != "[14:30:05] [ERROR] Usage: /pm <username> <message>" {
		t.Errorf("PrivateUsage = %q", got)
	}
}

func TestRoster(t *testing.T) {
	got := Roster([]string{"alice", "bob"})

	if !strings.Contains(got, "Online Users (2): alice, bob") {
		t.Errorf("Roster missing user list, got %q", got)
	}
}

func TestWelcome(t *testing.T) {
	got := Welcome("alice")

	if !strings.Contains(got, "Welcome to the chat server, alice!") {
		t.Errorf("Welcome missing greeting, got %q", got)
	}
	if !strings.Contains(got, "Type '/help' for commands") {
		t.Errorf("Welcome missing help hint, got %q", got)
	}
}

func TestHelp(t *testing.T) {
	got := Help()

	for _, cmd := range []string{"/pm", "/list", "/help", "/quit"} {
		if !strings.Contains(got, cmd) {
			t.Errorf("Help missing %q", cmd)
		}
	}
}
