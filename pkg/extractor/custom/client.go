package custom

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"
)

var _ extractor.Provider = (*Client)(nil)

// Client calls a self-hosted OCR inference server that accepts a base64
// encoded image and answers with the recognized text.
type Client struct {
	client *http.Client

	url   string
	token string

	prompt string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		prompt: "<image>\nFree OCR.",
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if file.ContentType != "" && !provider.IsImage(file.ContentType) {
		return nil, extractor.ErrUnsupported
	}

	body := InferenceRequest{
		Prompt: c.prompt,
		Image:  base64.StdEncoding.EncodeToString(file.Content),
	}

	data, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result InferenceResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &extractor.Document{
		Text: strings.TrimSpace(result.Text),
	}, nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
