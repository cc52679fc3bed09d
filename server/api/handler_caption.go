package api

import (
	"log/slog"
	"net/http"
)

func (h *Handler) handleCaption(w http.ResponseWriter, r *http.Request) {
	file, err := h.readFile(w, r)

	if err != nil {
		writeError(w, readErrorStatus(err), err)
		return
	}

	result, err := h.Narrator.Caption(r.Context(), *file)

	if err != nil {
		slog.ErrorContext(r.Context(), "caption failed", "file", file.Name, "error", err)

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, CaptionResponse{
		Caption: result.Caption,
		Text:    result.DetectedText,
	})
}
