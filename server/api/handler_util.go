package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"
)

var (
	errNoFile       = errors.New("No file uploaded")
	errFileNotFound = errors.New("File not found")
	errFileTooLarge = errors.New("File too large")
)

// readFile reads the multipart "file" field of an upload.
func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) (*provider.File, error) {
	if h.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	}

	file, header, err := r.FormFile("file")

	if err != nil {
		var maxBytesErr *http.MaxBytesError

		if errors.As(err, &maxBytesErr) {
			return nil, errFileTooLarge
		}

		return nil, errNoFile
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errNoFile
	}

	contentType := header.Header.Get("Content-Type")

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType, _, _ = strings.Cut(http.DetectContentType(data), ";")
	}

	return &provider.File{
		Name: header.Filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func readErrorStatus(err error) int {
	if errors.Is(err, errFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	if errors.Is(err, errNoFile) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// publicURL returns the base URL clients reach this server under.
func (h *Handler) publicURL(r *http.Request) string {
	if h.PublicURL != "" {
		return strings.TrimRight(h.PublicURL, "/")
	}

	scheme := "http"

	if r.TLS != nil {
		scheme = "https"
	}

	if val := r.Header.Get("X-Forwarded-Proto"); val != "" {
		scheme, _, _ = strings.Cut(val, ",")
		scheme = strings.TrimSpace(scheme)
	}

	host := r.Host

	if val := r.Header.Get("X-Forwarded-Host"); val != "" {
		host, _, _ = strings.Cut(val, ",")
		host = strings.TrimSpace(host)
	}

	return scheme + "://" + host
}

func (h *Handler) audioURL(r *http.Request, name string) string {
	return h.publicURL(r) + "/tts_audio/" + url.PathEscape(name)
}
