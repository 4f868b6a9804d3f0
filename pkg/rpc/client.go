package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/transport"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// DefaultCallTimeout bounds a call whose context has no deadline.
const DefaultCallTimeout = 30 * time.Second

// ClientConfig configures a Client.
type ClientConfig struct {
	// Secret is used to prove knowledge of the server's shared secret.
	Secret []byte

	// Name identifies the client in Hello.
	Name string

	Timeout        time.Duration
	ConnectTimeout time.Duration
	MaxMessageSize uint32

	Logger  *slog.Logger
	Capture log.Logger
}

// Client is a connected, handshaken bridge client.
type Client struct {
	conn    *transport.ClientConn
	logger  *slog.Logger
	timeout time.Duration

	sessionID     string
	serverVersion string
	serverName    string

	nextID atomic.Uint32

	pendingMu sync.Mutex
	pending   map[uint32]chan *wire.Response

	notifyMu sync.RWMutex
	notify   func(event.Event)

	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Dial connects to addr and performs the handshake.
func Dial(ctx context.Context, addr string, cfg ClientConfig) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCallTimeout
	}

	conn, err := transport.NewClient(transport.ClientConfig{
		MaxMessageSize: cfg.MaxMessageSize,
		ConnectTimeout: cfg.ConnectTimeout,
		Logger:         cfg.Capture,
	}).Connect(ctx, addr)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:    conn,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
		pending: make(map[uint32]chan *wire.Response),
		done:    make(chan struct{}),
	}
	if err := c.handshake(ctx, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	go c.readLoop()
	return c, nil
}

func (c *Client) handshake(ctx context.Context, cfg ClientConfig) error {
	hello, err := NewHello(cfg.Secret, cfg.Name)
	if err != nil {
		return err
	}
	data, err := wire.EncodeEnvelope(&wire.Envelope{Type: wire.TypeHello, Hello: hello})
	if err != nil {
		return err
	}
	if err := c.conn.Send(data); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	wait := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		wait = time.Until(dl)
	}
	reply, err := c.conn.Receive(wait)
	if err != nil {
		return fmt.Errorf("await hello ack: %w", err)
	}
	env, err := wire.DecodeEnvelope(reply)
	if err != nil {
		return err
	}

	switch env.Type {
	case wire.TypeHelloAck:
		c.sessionID = env.HelloAck.SessionID
		c.serverVersion = env.HelloAck.Version
		c.serverName = env.HelloAck.Server
		return nil
	case wire.TypeResponse:
		if env.Response.Error != nil {
			return env.Response.Error
		}
	}
	return fmt.Errorf("%w: %s during handshake", ErrUnexpectedReply, env.Type)
}

// SessionID returns the server-assigned session ID.
func (c *Client) SessionID() string { return c.sessionID }

// ServerVersion returns the protocol version reported by the server.
func (c *Client) ServerVersion() string { return c.serverVersion }

// ServerName returns the name reported by the server.
func (c *Client) ServerName() string { return c.serverName }

// SetNotificationHandler installs fn for pushed events. It is called from the
// read goroutine and must not block.
func (c *Client) SetNotificationHandler(fn func(event.Event)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.notify = fn
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err returns the reason the connection ended, once Done is closed.
func (c *Client) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Close closes the connection. Pending calls fail with ErrClientClosed.
func (c *Client) Close() error {
	err := c.conn.Close()
	c.shutdown(ErrClientClosed)
	return err
}

// Call invokes method and decodes its result into result (which may be nil).
// Remote failures are returned as *wire.Error.
func (c *Client) Call(ctx context.Context, method string, params wire.Params, result any) error {
	resp, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result == nil {
		return nil
	}
	return resp.Decode(result)
}

// CallResult is Call with a typed result.
func CallResult[T any](ctx context.Context, c *Client, method string, params wire.Params) (T, error) {
	var out T
	err := c.Call(ctx, method, params, &out)
	return out, err
}

func (c *Client) roundTrip(ctx context.Context, method string, params wire.Params) (*wire.Response, error) {
	select {
	case <-c.done:
		return nil, ErrClientClosed
	default:
	}

	id := c.nextID.Add(1)
	if id == 0 {
		id = c.nextID.Add(1)
	}

	ch := make(chan *wire.Response, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	data, err := wire.EncodeEnvelope(wire.RequestEnvelope(&wire.Request{ID: id, Method: method, Params: params}))
	if err != nil {
		return nil, err
	}
	if err := c.conn.Send(data); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrRequestTimeout
	case <-c.done:
		return nil, ErrClientClosed
	}
}

func (c *Client) readLoop() {
	for {
		data, err := c.conn.Receive(0)
		if err != nil {
			if errors.Is(err, transport.ErrConnectionClosed) {
				err = ErrClientClosed
			}
			c.shutdown(err)
			return
		}

		env, err := wire.DecodeEnvelope(data)
		if err != nil {
			c.logger.Warn("dropping invalid frame", "error", err)
			continue
		}

		switch env.Type {
		case wire.TypeResponse:
			c.pendingMu.Lock()
			ch, ok := c.pending[env.Response.ID]
			c.pendingMu.Unlock()
			if !ok {
				c.logger.Debug("response without caller", "id", env.Response.ID)
				continue
			}
			select {
			case ch <- env.Response:
			default:
				c.logger.Debug("duplicate response", "id", env.Response.ID)
			}
		case wire.TypeNotification:
			c.notifyMu.RLock()
			fn := c.notify
			c.notifyMu.RUnlock()
			if fn != nil {
				fn(env.Notification.Event)
			}
		default:
			c.logger.Debug("unexpected envelope", "type", env.Type)
		}
	}
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.err = err
		close(c.done)
	})
}
