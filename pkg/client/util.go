package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"
)

// writeFile writes input as the multipart "file" field.
func writeFile(name string, r io.Reader) (*bytes.Buffer, string, error) {
	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(name)))

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(name)+`"`)
	header.Set("Content-Type", contentType)

	file, err := w.CreatePart(header)

	if err != nil {
		return nil, "", err
	}

	if _, err := io.Copy(file, r); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &data, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// convertError prefers the JSON error message returned by the server.
func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var result struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(data, &result); err == nil && result.Error != "" {
		return errors.New(result.Error)
	}

	if len(data) > 0 {
		return errors.New(strings.TrimSpace(string(data)))
	}

	return errors.New(resp.Status)
}
