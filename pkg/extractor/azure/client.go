package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/narrator/pkg/extractor"
)

var _ extractor.Provider = &Client{}

type Client struct {
	client *http.Client

	url   string
	token string

	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		interval: time.Second,
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

	operationURL, err := c.analyze(ctx, file, options)

	if err != nil {
		return nil, err
	}

	for {
		operation, err := c.poll(ctx, operationURL)

		if err != nil {
			return nil, err
		}

		if operation.Status == OperationStatusRunning || operation.Status == OperationStatusNotStarted {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.interval):
			}

			continue
		}

		if operation.Status != OperationStatusSucceeded {
			return nil, errors.New("operation " + string(operation.Status))
		}

		return convertResult(operation.Result), nil
	}
}

func (c *Client) analyze(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (string, error) {
	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/prebuilt-read:analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")

	if options.Language != "" {
		query.Set("locale", options.Language)
	}

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(file.Content))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", convertError(resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return "", errors.New("missing operation location")
	}

	return operationURL, nil
}

func (c *Client) poll(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var operation AnalyzeOperation

	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

func convertResult(result AnalyzeResult) *extractor.Document {
	doc := &extractor.Document{
		Text: strings.TrimSpace(result.Content),

		Pages:  []extractor.Page{},
		Blocks: []extractor.Block{},
	}

	for _, page := range result.Pages {
		doc.Pages = append(doc.Pages, extractor.Page{
			Page: page.PageNumber,

			Unit:   page.Unit,
			Width:  page.Width,
			Height: page.Height,
		})

		for _, word := range page.Words {
			doc.Blocks = append(doc.Blocks, extractor.Block{
				Page: page.PageNumber,
				Text: word.Content,

				Score:   word.Confidence,
				Polygon: convertPolygon(word.Polygon),
			})
		}
	}

	return doc
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

func convertPolygon(polygon []float64) [][2]float64 {
	if len(polygon)%2 != 0 {
		return nil
	}

	result := make([][2]float64, 0, len(polygon)/2)

	for i := 0; i < len(polygon); i += 2 {
		result = append(result, [2]float64{
			polygon[i],
			polygon[i+1],
		})
	}

	return result
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
