package client

import (
	"context"
	"io"
	"net/http"
	"slices"
	"strings"
)

type AudioService struct {
	Options []RequestOption
}

func NewAudioService(opts ...RequestOption) AudioService {
	return AudioService{
		Options: opts,
	}
}

type Audio struct {
	Content     []byte
	ContentType string
}

// Get downloads audio by absolute URL, as returned in a narration, or by file name.
func (r *AudioService) Get(ctx context.Context, url string, opts ...RequestOption) (*Audio, error) {
	c := newRequestConfig(slices.Concat(r.Options, opts)...)

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = c.URL + "/tts_audio/" + strings.TrimPrefix(url, "/")
	}

	req, _ := http.NewRequestWithContext(ctx, "GET", url, nil)

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

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Audio{
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
