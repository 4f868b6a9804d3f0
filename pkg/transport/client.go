package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rcbridge/rcbridge-go/pkg/log"
)

// DefaultConnectTimeout bounds Connect when the context has no deadline.
const DefaultConnectTimeout = 10 * time.Second

// ClientConfig configures a bridge client.
type ClientConfig struct {
	// MaxMessageSize is the maximum frame payload (default 1 MiB).
	MaxMessageSize uint32

	// ConnectTimeout is used when Connect's context has no deadline.
	ConnectTimeout time.Duration

	// Logger records frames (optional).
	Logger log.Logger
}

// Client dials bridge servers.
type Client struct {
	config ClientConfig
}

// NewClient creates a client.
func NewClient(config ClientConfig) *Client {
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}
	return &Client{config: config}
}

// Connect dials address over TCP.
func (c *Client) Connect(ctx context.Context, address string) (*ClientConn, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	cc := &ClientConn{
		conn:    conn,
		framer:  NewFramer(conn, c.config.MaxMessageSize),
		closeCh: make(chan struct{}),
		connID:  uuid.New().String(),
	}
	if c.config.Logger != nil {
		cc.framer.SetLogger(c.config.Logger, cc.connID)
	}
	return cc, nil
}

// ClientConn is a connection from a client to a bridge server.
type ClientConn struct {
	conn      net.Conn
	framer    *Framer
	closeCh   chan struct{}
	closeOnce sync.Once
	readMu    sync.Mutex
	connID    string
}

// ConnID returns the client-side connection UUID used in capture logs.
func (c *ClientConn) ConnID() string {
	return c.connID
}

// LocalAddr returns the local address.
func (c *ClientConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the server address.
func (c *ClientConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Send writes one frame. Safe for concurrent use.
func (c *ClientConn) Send(data []byte) error {
	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}
	return c.framer.WriteFrame(data)
}

// Receive reads one frame. A zero timeout blocks until a frame arrives or the
// connection closes.
func (c *ClientConn) Receive(timeout time.Duration) ([]byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	select {
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	default:
	}

	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.conn.SetReadDeadline(time.Time{})
	}

	data, err := c.framer.ReadFrame()
	if err != nil {
		select {
		case <-c.closeCh:
			return nil, ErrConnectionClosed
		default:
		}
		return nil, err
	}
	return data, nil
}

// Close closes the connection.
func (c *ClientConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrFrameTruncated) || errors.Is(err, net.ErrClosed)
}

// IsTimeout reports whether err is a read deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
