package caption

import (
	"github.com/adrianliechti/narrator/pkg/extractor"
)

type Option func(*Captioner)

func WithExtractor(extractor extractor.Provider) Option {
	return func(c *Captioner) {
		c.extractor = extractor
	}
}

func WithWords(n int) Option {
	return func(c *Captioner) {
		if n > 0 {
			c.words = n
		}
	}
}

func WithMaxTokens(n int) Option {
	return func(c *Captioner) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

func WithTemperature(temperature *float32) Option {
	return func(c *Captioner) {
		c.temperature = temperature
	}
}

func WithLanguage(language string) Option {
	return func(c *Captioner) {
		c.language = language
	}
}
