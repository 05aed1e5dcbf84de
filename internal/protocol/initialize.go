package protocol

// MethodInitialize is the first request of the LSP handshake.
const MethodInitialize = "initialize"

// InitializeParams carries the fields the probe advertises. ProcessID is a
// pointer without omitempty so it serializes as an explicit null when unset,
// matching what editors send for a server they did not spawn.
type InitializeParams struct {
	ProcessID        *int               `json:"processId"`
	RootURI          string             `json:"rootUri"`
	Capabilities     ClientCapabilities `json:"capabilities"`
	WorkspaceFolders []WorkspaceFolder  `json:"workspaceFolders"`
}

// ClientCapabilities is the capability tree the probe claims.
type ClientCapabilities struct {
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitempty"`
}

type TextDocumentClientCapabilities struct {
	Hover      *HoverClientCapabilities      `json:"hover,omitempty"`
	Completion *CompletionClientCapabilities `json:"completion,omitempty"`
}

type HoverClientCapabilities struct {
	ContentFormat []string `json:"contentFormat,omitempty"`
}

type CompletionClientCapabilities struct {
	CompletionItem *CompletionItemCapabilities `json:"completionItem,omitempty"`
}

type CompletionItemCapabilities struct {
	SnippetSupport bool `json:"snippetSupport"`
}

// WorkspaceFolder names one workspace root.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// NewInitializeRequest builds the initialize request the probe sends:
// markdown and plaintext hover, snippet-capable completion, and a single
// workspace folder rooted at rootURI.
func NewInitializeRequest(id int, rootURI, workspaceName string) *Request {
	params := InitializeParams{
		RootURI: rootURI,
		Capabilities: ClientCapabilities{
			TextDocument: &TextDocumentClientCapabilities{
				Hover: &HoverClientCapabilities{
					ContentFormat: []string{"markdown", "plaintext"},
				},
				Completion: &CompletionClientCapabilities{
					CompletionItem: &CompletionItemCapabilities{
						SnippetSupport: true,
					},
				},
			},
		},
		WorkspaceFolders: []WorkspaceFolder{
			{URI: rootURI, Name: workspaceName},
		},
	}

	return NewRequest(id, MethodInitialize, params)
}
