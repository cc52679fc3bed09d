package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
)

type CaptionService struct {
	Options []RequestOption
}

func NewCaptionService(opts ...RequestOption) CaptionService {
	return CaptionService{
		Options: opts,
	}
}

type Caption struct {
	Caption string `json:"caption"`
	Text    string `json:"text,omitempty"`
}

type CaptionRequest struct {
	Name   string
	Reader io.Reader
}

func (r *CaptionService) New(ctx context.Context, input CaptionRequest, opts ...RequestOption) (*Caption, error) {
	c := newRequestConfig(slices.Concat(r.Options, opts)...)

	data, contentType, err := writeFile(input.Name, input.Reader)

	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/caption", data)
	req.Header.Set("Content-Type", contentType)

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result Caption

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
