package api

import (
	"log/slog"
	"net/http"
)

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, err := h.readFile(w, r)

	if err != nil {
		writeError(w, readErrorStatus(err), err)
		return
	}

	result, err := h.Narrator.Narrate(r.Context(), *file)

	if err != nil {
		slog.ErrorContext(r.Context(), "narration failed", "file", file.Name, "error", err)

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, UploadResponse{
		Caption:  result.Caption,
		AudioURL: h.audioURL(r, result.AudioName),
	})
}
