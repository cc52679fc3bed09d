package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tts_audio")

	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(t.Context(), "caption_audio.mp3", []byte("first"), "audio/mpeg"))
	require.NoError(t, s.Put(t.Context(), "caption_audio.mp3", []byte("second"), "audio/mpeg"))

	obj, err := s.Get(t.Context(), "caption_audio.mp3")
	require.NoError(t, err)

	require.Equal(t, "second", string(obj.Content))
	require.Equal(t, "audio/mpeg", obj.ContentType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestGetMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(t.Context(), "missing.mp3")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.ErrorIs(t, s.Put(t.Context(), "../escape.txt", []byte("x"), ""), storage.ErrInvalidName)

	_, err = s.Get(t.Context(), "../../etc/passwd")
	require.ErrorIs(t, err, storage.ErrInvalidName)
}
