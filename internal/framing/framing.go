// Package framing implements the Content-Length delimited message framing
// used by the Language Server Protocol. The codec is a pure encode/decode
// pair over byte slices and buffered readers, so it can be exercised without
// a live socket.
package framing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ContentLengthHeader is the one header the protocol requires. Header names
// are case-insensitive on the wire; Message.Headers keys are lowercased.
const ContentLengthHeader = "content-length"

// Message is one framed message as read off the wire.
type Message struct {
	// Headers holds the parsed header block, keys lowercased.
	Headers map[string]string

	// Body holds the raw body bytes. On a truncated read it holds however
	// many bytes arrived before the stream ended.
	Body []byte

	// Value is the body parsed as JSON, or the body as a plain string when
	// it is not valid JSON. Nil for headers-only messages.
	Value any

	// Raw holds the literal header text consumed when the stream carried no
	// Content-Length header (or ended inside the header block). Empty for
	// well-formed messages.
	Raw string
}

// HeadersOnly reports whether the message carried no framed body.
func (m *Message) HeadersOnly() bool {
	return m.Raw != ""
}

// String renders the message for diagnostic output: pretty-printed JSON when
// the body parsed, the raw text otherwise.
func (m *Message) String() string {
	if m.HeadersOnly() {
		return m.Raw
	}
	if m.Value != nil {
		if _, ok := m.Value.(string); !ok {
			if pretty, err := json.MarshalIndent(m.Value, "", "  "); err == nil {
				return string(pretty)
			}
		}
	}
	return string(m.Body)
}

// Encode frames payload as a Content-Length delimited message. The declared
// length is the exact byte length of the payload.
func Encode(payload []byte) []byte {
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(payload))
	framed := make([]byte, 0, len(header)+len(payload))
	framed = append(framed, header...)
	return append(framed, payload...)
}

// EncodeJSON marshals v and frames the result.
func EncodeJSON(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	return Encode(payload), nil
}

// Decode reads one framed message from r.
//
// A header block lacking Content-Length is not an error: the literal header
// text is handed back in Message.Raw so the caller can show what the peer
// actually sent. A stream that ends mid-body returns the partial bytes in
// Message.Body alongside the read error.
func Decode(r *bufio.Reader) (*Message, error) {
	msg := &Message{Headers: make(map[string]string)}

	var header strings.Builder
	for {
		raw, err := r.ReadString('\n')
		header.WriteString(raw)

		line := strings.TrimRight(raw, "\r\n")
		if line != "" {
			if name, value, ok := strings.Cut(line, ":"); ok {
				msg.Headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
			}
		}
		if err != nil {
			if header.Len() == 0 {
				return nil, errors.Wrap(err, "read header")
			}
			// Stream ended inside the header block.
			msg.Raw = header.String()
			return msg, nil
		}
		if line == "" {
			break
		}
	}

	value, ok := msg.Headers[ContentLengthHeader]
	if !ok {
		msg.Raw = header.String()
		return msg, nil
	}

	length, err := strconv.Atoi(value)
	if err != nil || length < 0 {
		return msg, errors.Errorf("invalid Content-Length %q", value)
	}

	body := make([]byte, length)
	n, err := io.ReadFull(r, body)
	msg.Body = body[:n]
	msg.Value = parseBody(msg.Body)
	if err != nil {
		return msg, errors.Wrap(err, "read body")
	}
	return msg, nil
}

// parseBody decodes the body as JSON, falling back to the raw string.
func parseBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return string(body)
	}
	return value
}
