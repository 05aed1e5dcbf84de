// Package probe implements liveness checks for targets that may not speak
// LSP at all: push arbitrary bytes (or a bare HTTP request) down the socket
// and report whatever comes back within a short read window.
package probe

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultDialTimeout bounds the connection attempt.
	DefaultDialTimeout = 5 * time.Second

	// DefaultReadWindow is how long to wait for the target to answer. A
	// silent target within the window is a finding, not a failure.
	DefaultReadWindow = 2 * time.Second

	readBufferSize = 1024
)

// DefaultPayload is the raw probe's canary message.
var DefaultPayload = []byte("hello\n")

// Result reports one probe exchange.
type Result struct {
	Sent     []byte
	Received []byte

	// TimedOut is set when the target accepted the connection but sent
	// nothing back within the read window.
	TimedOut bool
}

// Options tune a probe. Zero values fall back to the defaults above.
type Options struct {
	DialTimeout time.Duration
	ReadWindow  time.Duration
	Logger      zerolog.Logger
}

func (o *Options) fill() {
	if o.DialTimeout <= 0 {
		o.DialTimeout = DefaultDialTimeout
	}
	if o.ReadWindow <= 0 {
		o.ReadWindow = DefaultReadWindow
	}
}

// Raw connects to addr, writes payload, and reports the first chunk the
// target sends back. A nil payload sends DefaultPayload.
func Raw(ctx context.Context, addr string, payload []byte, opts Options) (*Result, error) {
	opts.fill()
	if payload == nil {
		payload = DefaultPayload
	}
	return exchange(ctx, addr, payload, opts)
}

// HTTP connects to addr and issues a hand-written GET to see whether the
// target is actually an HTTP server.
func HTTP(ctx context.Context, addr string, opts Options) (*Result, error) {
	opts.fill()
	request := []byte("GET / HTTP/1.1\r\nHost: " + addr + "\r\n\r\n")
	return exchange(ctx, addr, request, opts)
}

func exchange(ctx context.Context, addr string, payload []byte, opts Options) (*Result, error) {
	dialer := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()

	opts.Logger.Debug().
		Str("addr", addr).
		Int("bytes", len(payload)).
		Msg("probe connected")

	if err := conn.SetWriteDeadline(time.Now().Add(opts.DialTimeout)); err != nil {
		return nil, errors.Wrap(err, "set write deadline")
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, errors.Wrap(err, "write probe payload")
	}

	result := &Result{Sent: payload}

	if err := conn.SetReadDeadline(time.Now().Add(opts.ReadWindow)); err != nil {
		return nil, errors.Wrap(err, "set read deadline")
	}

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if n > 0 {
		result.Received = buf[:n]
	}
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			result.TimedOut = true
			opts.Logger.Debug().Str("addr", addr).Msg("probe read window elapsed")
		case errors.Is(err, io.EOF):
			// Closed without answering; still a finding.
			opts.Logger.Debug().Str("addr", addr).Msg("target closed the connection")
		default:
			return result, errors.Wrap(err, "read probe response")
		}
	}

	return result, nil
}
