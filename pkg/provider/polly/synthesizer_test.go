package polly

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func setupCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_SESSION_TOKEN", "")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

func TestSynthesize(t *testing.T) {
	setupCredentials(t)

	var path string
	var body map[string]any

	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			path = r.URL.Path

			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &body)

			return &http.Response{
				StatusCode: http.StatusOK,

				Header: http.Header{
					"Content-Type": []string{"audio/mpeg"},
				},

				Body:    io.NopCloser(strings.NewReader("mp3-bytes")),
				Request: r,
			}, nil
		}),
	}

	s, err := NewSynthesizer(WithClient(client), WithRegion("us-east-1"), WithVoice("Matthew"))
	require.NoError(t, err)

	result, err := s.Synthesize(t.Context(), "a busy road", &provider.SynthesizeOptions{
		Language: "en",
	})

	require.NoError(t, err)
	require.Equal(t, "/v1/speech", path)

	require.Equal(t, "a busy road", body["Text"])
	require.Equal(t, "Matthew", body["VoiceId"])
	require.Equal(t, "en-US", body["LanguageCode"])
	require.Equal(t, "mp3", body["OutputFormat"])
	require.Equal(t, "neural", body["Engine"])

	require.Equal(t, "mp3-bytes", string(result.Content))
	require.Equal(t, "audio/mpeg", result.ContentType)
	require.Equal(t, "Matthew", result.Model)
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	setupCredentials(t)

	var body map[string]any

	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, &body)

			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"audio/mpeg"}},
				Body:       io.NopCloser(strings.NewReader("mp3")),
				Request:    r,
			}, nil
		}),
	}

	s, err := NewSynthesizer(WithClient(client), WithRegion("us-east-1"))
	require.NoError(t, err)

	_, err = s.Synthesize(t.Context(), "hello", &provider.SynthesizeOptions{
		Voice: "Vicki",
	})

	require.NoError(t, err)
	require.Equal(t, "Vicki", body["VoiceId"])
	require.NotContains(t, body, "LanguageCode")
}

func TestLanguageCode(t *testing.T) {
	require.Equal(t, "", languageCode(""))
	require.Equal(t, "en-US", languageCode("en"))
	require.Equal(t, "de-DE", languageCode("de"))
	require.Equal(t, "en-GB", languageCode("en-GB"))
}
