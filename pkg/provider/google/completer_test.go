package google

import (
	"encoding/base64"
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
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			http.NotFound(w, r)
			return
		}

		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "a busy road"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 3}
		}`)
	}))

	defer server.Close()

	c, err := NewCompleter("gemini-test", WithURL(server.URL), WithToken("test"))
	require.NoError(t, err)

	maxTokens := 50

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent("Describe the scene:"),
				provider.FileContent(&provider.File{
					Name:        "street.png",
					Content:     []byte("png-bytes"),
					ContentType: "image/png",
				}),
			},
		},
	}

	result, err := c.Complete(t.Context(), messages, &provider.CompleteOptions{
		MaxTokens: &maxTokens,
	})

	require.NoError(t, err)
	require.Equal(t, "a busy road", result.Message.Text())
	require.Equal(t, provider.CompletionReasonStop, result.Reason)
	require.Equal(t, 12, result.Usage.InputTokens)
	require.Equal(t, 3, result.Usage.OutputTokens)

	contents := body["contents"].([]any)
	require.Len(t, contents, 1)

	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	require.Equal(t, "Describe the scene:", parts[0].(map[string]any)["text"])

	inline := parts[1].(map[string]any)["inlineData"].(map[string]any)
	require.Equal(t, "image/png", inline["mimeType"])
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), inline["data"])

	generation := body["generationConfig"].(map[string]any)
	require.Equal(t, float64(50), generation["maxOutputTokens"])
}

func TestCompleteRejectsNonImage(t *testing.T) {
	c, err := NewCompleter("gemini-test", WithURL("http://localhost:0"), WithToken("test"))
	require.NoError(t, err)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.FileContent(&provider.File{
					Name:        "notes.txt",
					Content:     []byte("hello"),
					ContentType: "text/plain",
				}),
			},
		},
	}

	_, err = c.Complete(t.Context(), messages, nil)
	require.ErrorContains(t, err, "unsupported content type")
}
