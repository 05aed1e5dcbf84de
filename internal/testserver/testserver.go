// Package testserver provides a minimal LSP server to point the probe at:
// it answers the initialize handshake with a fixed capability set and
// otherwise does nothing. Integration tests use it as a live TCP target, and
// the serve subcommand exposes it for manual probing.
package testserver

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

const (
	// Name is reported in the initialize result's serverInfo.
	Name = "lsp-probe-target"

	version = "0.1.0"
)

// New builds the server. Call RunTCP on the result to start listening.
func New() *glspserver.Server {
	handler := protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    func(context *glsp.Context, params *protocol.SetTraceParams) error { return nil },
	}
	return glspserver.NewServer(&handler, Name, false)
}

// initialize answers the handshake. The capability set is deliberately tiny;
// the probe only cares that a well-formed framed result comes back.
func initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	trueVal := true
	falseVal := false
	changeKind := protocol.TextDocumentSyncKindFull

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &changeKind,
			WillSave:  &falseVal,
		},
		HoverProvider: &[]bool{true}[0],
	}

	serverVersion := version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &serverVersion,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	return nil
}
