package clipcap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

// fakeServer mimics the inference server with a tiny word vocabulary. The
// "model" continues the prompt with a fixed sentence and then emits eos.
func fakeServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	vocab := []string{"<eos>", "Describe", "the", "scene:", "a", "dog", "on", "grass"}
	continuation := []int{4, 5, 6, 7}

	var steps atomic.Int32

	mux := http.NewServeMux()

	mux.HandleFunc("POST /prefix", func(w http.ResponseWriter, r *http.Request) {
		var req PrefixRequest
		json.NewDecoder(r.Body).Decode(&req)

		if req.Image == "" {
			http.Error(w, "missing image", http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(PrefixResponse{Prefix: [][]float32{{0.1, 0.2}, {0.3, 0.4}}})
	})

	mux.HandleFunc("POST /tokenize", func(w http.ResponseWriter, r *http.Request) {
		var req TokenizeRequest
		json.NewDecoder(r.Body).Decode(&req)

		var ids []int

		for _, word := range strings.Fields(req.Text) {
			for i, v := range vocab {
				if v == word {
					ids = append(ids, i)
				}
			}
		}

		json.NewEncoder(w).Encode(TokenizeResponse{IDs: ids})
	})

	mux.HandleFunc("POST /logits", func(w http.ResponseWriter, r *http.Request) {
		var req LogitsRequest
		json.NewDecoder(r.Body).Decode(&req)

		if len(req.Prefix) != 2 {
			http.Error(w, "missing prefix", http.StatusBadRequest)
			return
		}

		steps.Add(1)

		logits := make([]float32, len(vocab))
		generated := len(req.IDs) - 3

		if generated < len(continuation) {
			logits[continuation[generated]] = 5
		} else {
			logits[0] = 5
		}

		json.NewEncoder(w).Encode(LogitsResponse{Logits: logits})
	})

	mux.HandleFunc("POST /detokenize", func(w http.ResponseWriter, r *http.Request) {
		var req DetokenizeRequest
		json.NewDecoder(r.Body).Decode(&req)

		var words []string

		for _, id := range req.IDs {
			words = append(words, vocab[id])
		}

		json.NewEncoder(w).Encode(DetokenizeResponse{Text: strings.Join(words, " ")})
	})

	return httptest.NewServer(mux), &steps
}

func TestComplete(t *testing.T) {
	server, steps := fakeServer(t)
	defer server.Close()

	c, err := New(server.URL, "clipcap", WithEOS(0))
	require.NoError(t, err)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent("Describe the scene:"),
				provider.FileContent(&provider.File{Name: "dog.jpg", Content: []byte{0xff, 0xd8}, ContentType: "image/jpeg"}),
			},
		},
	}

	completion, err := c.Complete(t.Context(), messages, nil)
	require.NoError(t, err)

	require.Equal(t, "Describe the scene: a dog on grass", completion.Text())
	require.Equal(t, provider.CompletionReasonStop, completion.Reason)
	require.Equal(t, 3, completion.Usage.InputTokens)
	require.Equal(t, 4, completion.Usage.OutputTokens)
	require.Equal(t, int32(5), steps.Load())
}

func TestCompleteMaxTokens(t *testing.T) {
	server, steps := fakeServer(t)
	defer server.Close()

	c, err := New(server.URL, "clipcap", WithEOS(0))
	require.NoError(t, err)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent("Describe the scene:"),
				provider.FileContent(&provider.File{Content: []byte{1}, ContentType: "image/png"}),
			},
		},
	}

	maxTokens := 2

	completion, err := c.Complete(t.Context(), messages, &provider.CompleteOptions{MaxTokens: &maxTokens})
	require.NoError(t, err)

	require.Equal(t, "Describe the scene: a dog", completion.Text())
	require.Equal(t, provider.CompletionReasonLength, completion.Reason)
	require.Equal(t, int32(2), steps.Load())
}

func TestCompleteRequiresImage(t *testing.T) {
	c, err := New("http://localhost:1", "clipcap")
	require.NoError(t, err)

	_, err = c.Complete(t.Context(), []provider.Message{provider.UserMessage("Describe the scene:")}, nil)
	require.Error(t, err)
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))

	defer server.Close()

	c, err := New(server.URL, "clipcap")
	require.NoError(t, err)

	_, err = c.Encode(t.Context(), "hello")
	require.ErrorContains(t, err, "model not loaded")
}
