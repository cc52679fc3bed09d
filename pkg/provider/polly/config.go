package polly

import (
	"net/http"
)

type Config struct {
	region string

	voice  string
	engine string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithRegion(region string) Option {
	return func(c *Config) {
		c.region = region
	}
}

func WithVoice(voice string) Option {
	return func(c *Config) {
		c.voice = voice
	}
}

// WithEngine selects the Polly engine, e.g. "standard", "neural" or "generative".
func WithEngine(engine string) Option {
	return func(c *Config) {
		c.engine = engine
	}
}
