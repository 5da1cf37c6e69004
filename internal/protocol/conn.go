package protocol

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is a line-framed duplex connection owned by exactly one session.
type Conn interface {
	// ReadLine blocks until the next protocol line arrives. The returned
	// line has its trailing newline stripped.
	ReadLine() (string, error)

	// WriteLine sends one protocol line. Safe for concurrent use: the
	// router delivers broadcasts from other sessions' goroutines while
	// the owning session may be writing replies.
	WriteLine(line string) error

	// Close closes the underlying transport. Pending reads unblock
	// with an error.
	Close() error

	// RemoteAddr returns the peer endpoint, informational only.
	RemoteAddr() string
}

// netConn adapts a raw TCP (or in-memory test) connection with explicit
// newline framing. The stream gives no single-message atomicity, so
// relying on one read per logical message would be wrong; bufio restores
// message boundaries at line breaks.
type netConn struct {
	conn net.Conn
	r    *bufio.Reader

	writeMu sync.Mutex
}

// NewNetConn wraps a net.Conn in line framing.
func NewNetConn(conn net.Conn) Conn {
	return &netConn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

func (c *netConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *netConn) WriteLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *netConn) Close() error {
	return c.conn.Close()
}

func (c *netConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// wsConn adapts a WebSocket connection carrying one text frame per
// protocol line. Framing comes for free from the message boundary.
type wsConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

// NewWebSocketConn wraps a WebSocket connection as a protocol Conn.
func NewWebSocketConn(conn *websocket.Conn) Conn {
	return &wsConn{conn: conn}
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (c *wsConn) WriteLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsConn) Close() error {
	c.writeMu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
