// Package client implements the TCP probe client: one blocking connection,
// one framed request/response exchange at a time.
package client

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/zpc-sh/lsp-probe/internal/framing"
	"github.com/zpc-sh/lsp-probe/internal/protocol"
)

// DefaultTimeout bounds each write/read pair when no option overrides it.
const DefaultTimeout = 10 * time.Second

// Client is a probe connection to a framed JSON-RPC endpoint. It is not safe
// for concurrent use; the probe issues one request at a time by design.
type Client struct {
	conn    net.Conn
	reader  *bufio.Reader
	logger  zerolog.Logger
	timeout time.Duration
	nextID  int
}

// Option configures a Client at dial time.
type Option func(*Client)

// WithLogger attaches a logger for wire-level tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-exchange deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Dial connects to a framed JSON-RPC endpoint at addr.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	c := &Client{
		logger:  zerolog.Nop(),
		timeout: DefaultTimeout,
		nextID:  1,
	}
	for _, opt := range opts {
		opt(c)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.logger.Debug().Str("addr", addr).Msg("connected")
	return c, nil
}

// Call frames req, writes it, and reads one framed message back.
//
// The returned message may be headers-only or carry a truncated body; those
// are diagnostic outcomes the caller is expected to display, not failures of
// the exchange itself (see framing.Decode).
func (c *Client) Call(req *protocol.Request) (*framing.Message, error) {
	framed, err := framing.EncodeJSON(req)
	if err != nil {
		return nil, err
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, errors.Wrap(err, "set deadline")
	}

	c.logger.Debug().
		Int("id", req.ID).
		Str("method", req.Method).
		Int("bytes", len(framed)).
		Msg("sending request")

	if _, err := c.conn.Write(framed); err != nil {
		return nil, errors.Wrapf(err, "write %s request", req.Method)
	}

	msg, err := framing.Decode(c.reader)
	if err != nil {
		if msg != nil && len(msg.Body) > 0 {
			// Truncated body: surface the partial bytes with the error.
			c.logger.Warn().
				Int("partial_bytes", len(msg.Body)).
				Msg("response truncated")
			return msg, errors.Wrapf(err, "read %s response", req.Method)
		}
		return nil, errors.Wrapf(err, "read %s response", req.Method)
	}

	if msg.HeadersOnly() {
		c.logger.Warn().Msg("response carried no Content-Length header")
	} else {
		c.logger.Debug().Int("bytes", len(msg.Body)).Msg("received response")
	}
	return msg, nil
}

// Initialize performs the one-shot LSP handshake: send initialize, read one
// framed message back.
func (c *Client) Initialize(rootURI, workspaceName string) (*framing.Message, error) {
	req := protocol.NewInitializeRequest(c.id(), rootURI, workspaceName)
	return c.Call(req)
}

// Close tears down the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) id() int {
	id := c.nextID
	c.nextID++
	return id
}
