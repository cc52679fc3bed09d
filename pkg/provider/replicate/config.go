package replicate

import (
	"github.com/replicate/replicate-go"
)

type Config struct {
	url string

	token string
	model string
}

type Option func(*Config)

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func (c *Config) Options() []replicate.ClientOption {
	var options []replicate.ClientOption

	if c.url != "" {
		options = append(options, replicate.WithBaseURL(c.url))
	}

	if c.token != "" {
		options = append(options, replicate.WithToken(c.token))
	}

	return options
}
