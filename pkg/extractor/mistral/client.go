package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
)

var _ extractor.Provider = &Client{}

type Client struct {
	client *http.Client

	url   string
	token string

	model string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		url = "https://api.mistral.ai/v1/"
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		model: "mistral-ocr-latest",
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

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	body := Request{
		Model: c.model,

		Document: Document{
			Type:     "image_url",
			ImageURL: "data:" + contentType(file) + ";base64," + base64.StdEncoding.EncodeToString(file.Content),
		},
	}

	data, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.url, "/")+"/ocr", bytes.NewReader(data))
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

	var response Response

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return convertResult(&response), nil
}

func convertResult(response *Response) *extractor.Document {
	result := &extractor.Document{
		Pages:  []extractor.Page{},
		Blocks: []extractor.Block{},
	}

	var builder strings.Builder

	for _, p := range response.Pages {
		page := extractor.Page{
			Page: p.Index + 1,
		}

		if p.Dimensions != nil {
			page.Unit = "pixel"
			page.Width = float64(p.Dimensions.Width)
			page.Height = float64(p.Dimensions.Height)
		}

		if p.Markdown != "" {
			result.Blocks = append(result.Blocks, extractor.Block{
				Page: page.Page,
				Text: p.Markdown,
			})

			if builder.Len() > 0 {
				builder.WriteString("\n\n")
			}

			builder.WriteString(p.Markdown)
		}

		result.Pages = append(result.Pages, page)
	}

	result.Text = strings.TrimSpace(builder.String())

	return result
}

func isSupported(file extractor.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}

func contentType(file extractor.File) string {
	if file.ContentType != "" {
		return file.ContentType
	}

	switch strings.ToLower(path.Ext(file.Name)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	}

	return "image/jpeg"
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
