package gtts

import (
	"net/http"
)

type Config struct {
	url string

	language string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithLanguage(language string) Option {
	return func(c *Config) {
		c.language = language
	}
}
