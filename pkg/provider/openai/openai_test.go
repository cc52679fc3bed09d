package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

func TestCompleterSendsImage(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "a dog on a beach"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`)
	}))

	defer server.Close()

	c, err := NewCompleter(server.URL+"/v1", "gpt-4o-mini", WithToken("secret"))
	require.NoError(t, err)

	maxTokens := 50

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent("Describe the scene:"),
				provider.FileContent(&provider.File{
					Name:        "dog.png",
					Content:     []byte("png"),
					ContentType: "image/png",
				}),
			},
		},
	}

	completion, err := c.Complete(t.Context(), messages, &provider.CompleteOptions{
		MaxTokens: &maxTokens,
	})

	require.NoError(t, err)
	require.Equal(t, "a dog on a beach", completion.Text())
	require.Equal(t, provider.CompletionReasonStop, completion.Reason)
	require.Equal(t, 12, completion.Usage.InputTokens)

	require.Equal(t, "gpt-4o-mini", body["model"])
	require.EqualValues(t, 50, body["max_completion_tokens"])

	data, _ := json.Marshal(body["messages"])
	require.Contains(t, string(data), "data:image/png;base64,")
	require.Contains(t, string(data), "Describe the scene:")
}

func TestCompleterRejectsNonImage(t *testing.T) {
	c, err := NewCompleter("http://localhost:1/v1", "gpt-4o-mini")
	require.NoError(t, err)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.FileContent(&provider.File{
					Content:     []byte("%PDF"),
					ContentType: "application/pdf",
				}),
			},
		},
	}

	_, err = c.Complete(t.Context(), messages, nil)
	require.Error(t, err)
}

func TestSynthesizer(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/speech", r.URL.Path)

		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-audio"))
	}))

	defer server.Close()

	s, err := NewSynthesizer(server.URL+"/v1", "tts-1", WithVoice("nova"))
	require.NoError(t, err)

	result, err := s.Synthesize(t.Context(), "a dog on a beach", nil)
	require.NoError(t, err)

	require.Equal(t, []byte("ID3-audio"), result.Content)
	require.Equal(t, "audio/mpeg", result.ContentType)

	require.Equal(t, "tts-1", body["model"])
	require.Equal(t, "nova", body["voice"])
	require.Equal(t, "mp3", body["response_format"])
	require.True(t, strings.HasPrefix(body["input"].(string), "a dog"))
}
