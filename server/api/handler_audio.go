package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	obj, err := h.Narrator.Audio(r.Context(), name)

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			writeError(w, http.StatusNotFound, errFileNotFound)
			return
		}

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeContent(w, r, obj.Name, obj.ModTime, bytes.NewReader(obj.Content))
}
