package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializeRequest(t *testing.T) {
	req := NewInitializeRequest(1, "file:///src/code/markdown_ld", "markdown_ld")

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	want := `{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "initialize",
		"params": {
			"processId": null,
			"rootUri": "file:///src/code/markdown_ld",
			"capabilities": {
				"textDocument": {
					"hover": {
						"contentFormat": ["markdown", "plaintext"]
					},
					"completion": {
						"completionItem": {
							"snippetSupport": true
						}
					}
				}
			},
			"workspaceFolders": [
				{"uri": "file:///src/code/markdown_ld", "name": "markdown_ld"}
			]
		}
	}`

	assert.JSONEq(t, want, string(payload))
}

func TestResponseUnmarshal(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":1,"result":{"capabilities":{}}}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, "1", string(resp.ID))
	assert.JSONEq(t, `{"capabilities":{}}`, string(resp.Result))
	assert.Nil(t, resp.Error)
}

func TestResponseUnmarshalError(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Equal(t, "method not found", resp.Error.Message)
}
