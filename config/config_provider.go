package config

import (
	"net/http"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model  string `yaml:"model"`
	Region string `yaml:"region"`

	Voice  string `yaml:"voice"`
	Engine string `yaml:"engine"`

	EOS *int `yaml:"eos"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

type modelContext struct {
	ID string

	Client *http.Client
}

func createModelContext(cfg providerConfig) (modelContext, error) {
	context := modelContext{
		ID: cfg.Model,
	}

	if cfg.Proxy != nil {
		client, err := cfg.Proxy.proxyClient()

		if err != nil {
			return context, err
		}

		context.Client = client
	}

	return context, nil
}
