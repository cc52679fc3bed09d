package azure

import (
	"net/http"
	"time"
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

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

// https://learn.microsoft.com/en-us/azure/ai-services/document-intelligence/prebuilt/read
var SupportedExtensions = []string{
	".jpeg", ".jpg",
	".png",
	".bmp",
	".tiff",
	".heif",
}

// https://learn.microsoft.com/en-us/azure/ai-services/document-intelligence/prebuilt/read
var SupportedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/bmp",
	"image/tiff",
	"image/heif",
}
