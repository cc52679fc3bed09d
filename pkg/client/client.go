package client

import (
	"net/http"
	"slices"
)

type Client struct {
	Narrations NarrationService
	Captions   CaptionService

	Audio AudioService
}

func New(url string, opts ...RequestOption) *Client {
	opts = slices.Concat(opts, []RequestOption{WithURL(url)})

	return &Client{
		Narrations: NewNarrationService(opts...),
		Captions:   NewCaptionService(opts...),

		Audio: NewAudioService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
