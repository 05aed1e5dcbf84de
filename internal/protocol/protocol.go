// Package protocol defines the JSON-RPC 2.0 envelope and the slice of the
// LSP initialize handshake the probe speaks. The types are deliberately
// client-shaped and minimal: the probe must emit exactly the fields a real
// editor sends and keep working against servers that answer with anything.
package protocol

import "encoding/json"

// Version is the JSON-RPC protocol version sent on every request.
const Version = "2.0"

// Request is an outbound JSON-RPC request.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response is an inbound JSON-RPC response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the JSON-RPC error object.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewRequest builds a request with the protocol version filled in.
func NewRequest(id int, method string, params any) *Request {
	return &Request{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}
