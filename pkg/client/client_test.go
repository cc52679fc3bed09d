package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNarrationsNew(t *testing.T) {
	var srv *httptest.Server

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)

		defer file.Close()

		data, _ := io.ReadAll(file)

		require.Equal(t, "street.png", header.Filename)
		require.Equal(t, "image/png", header.Header.Get("Content-Type"))
		require.Equal(t, "png-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"caption":"a busy road","audio_url":"` + srv.URL + `/tts_audio/caption_audio.mp3"}`))
	}))

	defer srv.Close()

	c := New(srv.URL+"/", WithToken("secret"))

	result, err := c.Narrations.New(context.Background(), NarrationRequest{
		Name:   "street.png",
		Reader: strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
	require.Equal(t, "a busy road", result.Caption)
	require.Equal(t, srv.URL+"/tts_audio/caption_audio.mp3", result.AudioURL)
}

func TestNarrationsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"No file uploaded"}`))
	}))

	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Narrations.New(context.Background(), NarrationRequest{
		Name:   "empty.png",
		Reader: strings.NewReader(""),
	})

	require.EqualError(t, err, "No file uploaded")
}

func TestCaptionsNew(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/caption", r.URL.Path)

		w.Write([]byte(`{"caption":"STOP.  a stop sign","text":"STOP"}`))
	}))

	defer srv.Close()

	c := New(srv.URL)

	result, err := c.Captions.New(context.Background(), CaptionRequest{
		Name:   "sign.jpg",
		Reader: strings.NewReader("jpg"),
	})

	require.NoError(t, err)
	require.Equal(t, "STOP.  a stop sign", result.Caption)
	require.Equal(t, "STOP", result.Text)
}

func TestAudioGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts_audio/caption_audio.mp3" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"File not found"}`))
			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3"))
	}))

	defer srv.Close()

	c := New(srv.URL)

	audio, err := c.Audio.Get(context.Background(), srv.URL+"/tts_audio/caption_audio.mp3")
	require.NoError(t, err)
	require.Equal(t, "mp3", string(audio.Content))
	require.Equal(t, "audio/mpeg", audio.ContentType)

	audio, err = c.Audio.Get(context.Background(), "caption_audio.mp3")
	require.NoError(t, err)
	require.Equal(t, "mp3", string(audio.Content))

	_, err = c.Audio.Get(context.Background(), "missing.mp3")
	require.EqualError(t, err, "File not found")
}

func TestServiceOptionsNotShared(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"caption":"a busy road","audio_url":"caption_audio.mp3"}`))
	}))

	defer srv.Close()

	options := make([]RequestOption, 1, 4)
	options[0] = WithURL(srv.URL)

	s := NewNarrationService(options...)

	_, err := s.New(context.Background(), NarrationRequest{
		Name:   "street.png",
		Reader: strings.NewReader("png"),
	}, WithToken("secret"))

	require.NoError(t, err)
	require.Len(t, s.Options, 1)
	require.Nil(t, options[:2][1])
}
