package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
)

type NarrationService struct {
	Options []RequestOption
}

func NewNarrationService(opts ...RequestOption) NarrationService {
	return NarrationService{
		Options: opts,
	}
}

type Narration struct {
	Caption  string `json:"caption"`
	AudioURL string `json:"audio_url"`
}

type NarrationRequest struct {
	Name   string
	Reader io.Reader
}

// New uploads an image and returns its caption and the URL of the spoken caption.
func (r *NarrationService) New(ctx context.Context, input NarrationRequest, opts ...RequestOption) (*Narration, error) {
	c := newRequestConfig(slices.Concat(r.Options, opts)...)

	data, contentType, err := writeFile(input.Name, input.Reader)

	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/upload", data)
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

	var result Narration

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
