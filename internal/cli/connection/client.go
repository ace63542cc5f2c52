package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// DefaultTimeout bounds dialing and each round trip when the caller's
// context has no deadline.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client sends commands to a single server address.
type Client struct {
	network string
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	dec    *resp.Decoder
	enc    *resp.Encoder
	closed bool
}

// NewClient creates a client for addr. Addresses starting with "unix:"
// or "/" are unix socket paths. A zero timeout uses DefaultTimeout.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	network := "tcp"
	switch {
	case strings.HasPrefix(addr, "unix:"):
		network, addr = "unix", strings.TrimPrefix(addr, "unix:")
	case strings.HasPrefix(addr, "/"):
		network = "unix"
	}
	return &Client{network: network, addr: addr, timeout: timeout}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server if not already connected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.conn != nil {
		return nil
	}

	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, c.network, c.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	c.conn = conn
	c.dec = resp.NewDecoder(conn)
	c.enc = resp.NewEncoder(conn)
	return nil
}

// Do sends one command and returns the server's reply. Error replies are
// returned as values, not as errors; the error result is reserved for
// transport and protocol failures.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("connection: empty command")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(ctx); err != nil {
		return resp.Value{}, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		c.resetLocked()
		return resp.Value{}, err
	}

	if err := c.enc.Encode(resp.Command(args...)); err != nil {
		c.resetLocked()
		return resp.Value{}, fmt.Errorf("send: %w", err)
	}
	if err := c.enc.Flush(); err != nil {
		c.resetLocked()
		return resp.Value{}, fmt.Errorf("send: %w", err)
	}

	v, err := c.dec.Decode()
	if err != nil {
		c.resetLocked()
		return resp.Value{}, fmt.Errorf("read reply: %w", err)
	}
	return v, nil
}

// resetLocked drops the connection so the next Do redials.
func (c *Client) resetLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn, c.dec, c.enc = nil, nil, nil
}

// Close closes the connection. Subsequent calls to Do fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.dec, c.enc = nil, nil, nil
	return err
}
