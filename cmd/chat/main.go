// Command chat is the interactive terminal client for chatd.
//
// It prompts for a username, connects, and then runs two concurrent
// paths: a receive loop printing every server line and a send loop
// forwarding stdin lines.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/linefeed/chatd/internal/config"
	"github.com/linefeed/chatd/internal/protocol"
)

// Normal session endings; everything else is reported as an error.
var (
	errQuit         = errors.New("quit requested")
	errDisconnected = errors.New("disconnected from server")
)

func main() {
	addr := flag.String("addr", defaultAddr(), "chat server address")
	flag.Parse()

	stdin := bufio.NewScanner(os.Stdin)

	username, err := promptUsername(stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Could not connect to server at %s: %v\n", *addr, err)
		os.Exit(1)
	}

	lc := protocol.NewNetConn(conn)
	if err := lc.WriteLine(username); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to send username: %v\n", err)
		os.Exit(1)
	}

	// stdin cannot be interrupted mid-read, so a detached feeder owns
	// the scanner and the send loop selects on its channel.
	lines := make(chan string)
	go func() {
		defer close(lines)
		for stdin.Scan() {
			lines <- stdin.Text()
		}
	}()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error { return receive(lc) })
	g.Go(func() error { return send(ctx, lc, lines) })
	g.Go(func() error {
		// Whichever loop finishes first, closing the connection
		// unblocks the other.
		<-ctx.Done()
		lc.Close()
		return nil
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, errDisconnected) {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
	fmt.Println("[SYSTEM] Disconnected from server. Goodbye!")
}

// receive prints every server line. A fatal "ERROR:" line arrives only
// before registration and ends the session.
func receive(conn protocol.Conn) error {
	for {
		line, err := conn.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return errDisconnected
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		fmt.Println(line)

		if strings.HasPrefix(line, "ERROR:") {
			return errors.New(line)
		}
	}
}

// send forwards stdin lines to the server until /quit or end of input.
func send(ctx context.Context, conn protocol.Conn, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				// Ctrl-D: leave gracefully.
				conn.WriteLine("/quit")
				return errQuit
			}

			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := conn.WriteLine(line); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
			if strings.TrimSpace(line) == "/quit" {
				fmt.Println("[SYSTEM] Leaving chat...")
				return errQuit
			}
		}
	}
}

func promptUsername(stdin *bufio.Scanner) (string, error) {
	fmt.Print("Enter your username: ")
	if !stdin.Scan() {
		return "", errors.New("no username given")
	}

	username := strings.TrimSpace(stdin.Text())
	switch {
	case username == "":
		return "", errors.New("username cannot be empty")
	case strings.ContainsRune(username, ' '):
		return "", errors.New("username cannot contain spaces")
	case strings.HasPrefix(username, "/"):
		return "", errors.New("username cannot start with '/'")
	}
	return username, nil
}

// defaultAddr mirrors the server's zero-configuration bind: the local
// hostname and the default port.
func defaultAddr() string {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(config.DefaultPort))
}
