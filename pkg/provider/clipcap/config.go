package clipcap

import (
	"net/http"
)

// GPT2EOS is the end-of-text token of the GPT-2 vocabulary.
const GPT2EOS = 50256

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

func WithEOS(eos int) Option {
	return func(c *Client) {
		c.eos = eos
	}
}
