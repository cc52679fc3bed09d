package custom

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/narrator/pkg/extractor"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req InferenceRequest
		json.NewDecoder(r.Body).Decode(&req)

		if req.Prompt != "read the sign" || req.Image != "aGVsbG8=" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(InferenceResponse{Text: "  EXIT 12\n"})
	}))

	defer server.Close()

	c, err := New(server.URL, WithPrompt("read the sign"))
	require.NoError(t, err)

	doc, err := c.Extract(t.Context(), extractor.File{Content: []byte("hello"), ContentType: "image/jpeg"}, nil)
	require.NoError(t, err)

	require.Equal(t, "EXIT 12", doc.Text)
	require.Equal(t, []string{"EXIT", "12"}, doc.Words())
}

func TestExtractError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of memory", http.StatusInternalServerError)
	}))

	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Extract(t.Context(), extractor.File{Content: []byte{1}}, nil)
	require.ErrorContains(t, err, "out of memory")
}

func TestExtractUnsupported(t *testing.T) {
	c, err := New("http://localhost:1")
	require.NoError(t, err)

	_, err = c.Extract(t.Context(), extractor.File{ContentType: "application/pdf"}, nil)
	require.ErrorIs(t, err, extractor.ErrUnsupported)
}
