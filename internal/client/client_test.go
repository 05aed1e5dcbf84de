package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zpc-sh/lsp-probe/internal/framing"
	"github.com/zpc-sh/lsp-probe/internal/protocol"
)

// fakeServer accepts one connection, reads one framed request, and answers
// with the given raw bytes.
func fakeServer(t *testing.T, answer []byte) (addr string, requests <-chan *framing.Message) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	ch := make(chan *framing.Message, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		msg, err := framing.Decode(bufio.NewReader(conn))
		if err != nil {
			return
		}
		ch <- msg

		_, _ = conn.Write(answer)
	}()

	return ln.Addr().String(), ch
}

func TestInitializeRoundTrip(t *testing.T) {
	result := `{"jsonrpc":"2.0","id":1,"result":{"capabilities":{},"serverInfo":{"name":"markdown-ld"}}}`
	addr, requests := fakeServer(t, framing.Encode([]byte(result)))

	c, err := Dial(context.Background(), addr, WithTimeout(2*time.Second))
	require.NoError(t, err)
	defer c.Close()

	msg, err := c.Initialize("file:///src/code/markdown_ld", "markdown_ld")
	require.NoError(t, err)
	require.False(t, msg.HeadersOnly())

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(msg.Body, &resp))
	assert.Equal(t, "1", string(resp.ID))
	assert.Nil(t, resp.Error)

	// What went out must be a well-formed initialize request.
	sent := <-requests
	body, ok := sent.Value.(map[string]any)
	require.True(t, ok, "request body should be a JSON object")
	assert.Equal(t, "initialize", body["method"])
	assert.Equal(t, "2.0", body["jsonrpc"])

	params, ok := body["params"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, params, "processId")
	assert.Nil(t, params["processId"])
	assert.Equal(t, "file:///src/code/markdown_ld", params["rootUri"])
}

func TestCallHeadersOnlyResponse(t *testing.T) {
	// A peer that answers with non-LSP text; the raw header text must come
	// back instead of an error.
	addr, _ := fakeServer(t, []byte("HTTP/1.1 400 Bad Request\r\n\r\n"))

	c, err := Dial(context.Background(), addr, WithTimeout(2*time.Second))
	require.NoError(t, err)
	defer c.Close()

	msg, err := c.Initialize("file:///tmp/ws", "ws")
	require.NoError(t, err)
	assert.True(t, msg.HeadersOnly())
	assert.Contains(t, msg.Raw, "400 Bad Request")
}

func TestCallTruncatedResponse(t *testing.T) {
	addr, _ := fakeServer(t, []byte("Content-Length: 100\r\n\r\n{\"partial\":"))

	c, err := Dial(context.Background(), addr, WithTimeout(2*time.Second))
	require.NoError(t, err)
	defer c.Close()

	msg, err := c.Initialize("file:///tmp/ws", "ws")
	require.Error(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, `{"partial":`, string(msg.Body))
}

func TestDialConnectionRefused(t *testing.T) {
	// Grab a port nothing is listening on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = Dial(context.Background(), addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}

func TestCallTimeout(t *testing.T) {
	// Server that accepts and then says nothing.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	c, err := Dial(context.Background(), ln.Addr().String(), WithTimeout(100*time.Millisecond))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Initialize("file:///tmp/ws", "ws")
	require.Error(t, err)

	var netErr net.Error
	if assert.ErrorAs(t, err, &netErr) {
		assert.True(t, netErr.Timeout())
	}
}

func TestRequestIDsIncrement(t *testing.T) {
	c := &Client{nextID: 1}
	assert.Equal(t, 1, c.id())
	assert.Equal(t, 2, c.id())
	assert.Equal(t, 3, c.id())
}
