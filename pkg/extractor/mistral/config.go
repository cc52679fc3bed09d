package mistral

import (
	"net/http"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

var SupportedExtensions = []string{
	".jpeg", ".jpg",
	".png",
	".webp",
	".avif",
}

var SupportedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/avif",
}
