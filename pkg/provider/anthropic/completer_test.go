package anthropic

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.NotFound(w, r)
			return
		}

		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "a red bicycle against a wall"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 7}
		}`)
	}))

	defer server.Close()

	c, err := NewCompleter(server.URL, "claude-haiku-4-5", WithToken("secret"))
	require.NoError(t, err)

	maxTokens := 50

	messages := []provider.Message{
		provider.SystemMessage("Describe images briefly."),
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent("Describe the scene:"),
				provider.FileContent(&provider.File{Content: []byte("jpg"), ContentType: "image/jpeg"}),
			},
		},
	}

	completion, err := c.Complete(t.Context(), messages, &provider.CompleteOptions{MaxTokens: &maxTokens})
	require.NoError(t, err)

	require.Equal(t, "a red bicycle against a wall", completion.Text())
	require.Equal(t, provider.CompletionReasonStop, completion.Reason)
	require.Equal(t, 7, completion.Usage.OutputTokens)

	require.EqualValues(t, 50, body["max_tokens"])
	require.NotNil(t, body["system"])

	data, _ := json.Marshal(body["messages"])
	require.Contains(t, string(data), `"media_type":"image/jpeg"`)
	require.Contains(t, string(data), `"data":"anBn"`)
}

func TestCompleteRejectsNonImage(t *testing.T) {
	c, err := NewCompleter("http://localhost:1", "claude-haiku-4-5")
	require.NoError(t, err)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.FileContent(&provider.File{Content: []byte("%PDF"), ContentType: "application/pdf"}),
			},
		},
	}

	_, err = c.Complete(t.Context(), messages, nil)
	require.Error(t, err)
}
