package transport

import (
	"context"
	"net"
	"time"
)

// ServerConnection is the server side of one client connection.
type ServerConnection interface {
	ConnID() string
	RemoteAddr() net.Addr
	Send(data []byte) error
	Close() error
	Done() <-chan struct{}
}

// ClientConnection is a client's connection to a bridge server.
type ClientConnection interface {
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
	Send(data []byte) error
	Receive(timeout time.Duration) ([]byte, error)
	Close() error
}

// TransportServer accepts client connections.
type TransportServer interface {
	Start(ctx context.Context) error
	Stop() error
	Addr() net.Addr
	ConnectionCount() int
}

// FrameReadWriter provides length-prefixed frame I/O.
type FrameReadWriter interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
}

var (
	_ ServerConnection = (*ServerConn)(nil)
	_ ClientConnection = (*ClientConn)(nil)
	_ TransportServer  = (*Server)(nil)
	_ FrameReadWriter  = (*Framer)(nil)
)
