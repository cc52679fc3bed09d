package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/extractor/azure"
	"github.com/adrianliechti/narrator/pkg/extractor/custom"
	"github.com/adrianliechti/narrator/pkg/extractor/mistral"
	"github.com/adrianliechti/narrator/pkg/extractor/multi"
	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"

	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterExtractor(id string, p extractor.Provider) {
	if cfg.extractor == nil {
		cfg.extractor = make(map[string]extractor.Provider)
	}

	if _, ok := cfg.extractor[""]; !ok {
		cfg.extractor[""] = p
	}

	cfg.extractor[id] = p
}

func (cfg *Config) Extractor(id string) (extractor.Provider, error) {
	if cfg.extractor != nil {
		if c, ok := cfg.extractor[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("extractor not found: " + id)
}

type extractorConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model  string `yaml:"model"`
	Prompt string `yaml:"prompt"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

type extractorContext struct {
	Limiter *rate.Limiter
}

func (cfg *Config) registerExtractors(f *configFile) error {
	var configs map[string]extractorConfig

	if err := f.Extractors.Decode(&configs); err != nil {
		return err
	}

	var extractors []extractor.Provider

	for _, node := range f.Extractors.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		context := extractorContext{
			Limiter: createLimiter(config.Limit),
		}

		extractor, err := createExtractor(config, context)

		if err != nil {
			return err
		}

		if _, ok := extractor.(limiter.Extractor); !ok {
			extractor = limiter.NewExtractor(context.Limiter, extractor)
		}

		if _, ok := extractor.(otel.Extractor); !ok {
			extractor = otel.NewExtractor(strings.ToLower(config.Type), config.Model, extractor)
		}

		extractors = append(extractors, extractor)

		cfg.RegisterExtractor(id, extractor)
	}

	if len(extractors) > 1 {
		cfg.extractor[""] = multi.New(extractors...)
	}

	return nil
}

func createExtractor(cfg extractorConfig, context extractorContext) (extractor.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "azure":
		return azureExtractor(cfg)

	case "mistral":
		return mistralExtractor(cfg)

	case "custom", "ocr":
		return customExtractor(cfg)

	default:
		return nil, errors.New("invalid extractor type: " + cfg.Type)
	}
}

func azureExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, azure.WithClient(client))
	}

	return azure.New(cfg.URL, options...)
}

func mistralExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []mistral.Option

	if cfg.Token != "" {
		options = append(options, mistral.WithToken(cfg.Token))
	}

	if cfg.Model != "" {
		options = append(options, mistral.WithModel(cfg.Model))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, mistral.WithClient(client))
	}

	return mistral.New(cfg.URL, options...)
}

func customExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []custom.Option

	if cfg.Token != "" {
		options = append(options, custom.WithToken(cfg.Token))
	}

	if cfg.Prompt != "" {
		options = append(options, custom.WithPrompt(cfg.Prompt))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, custom.WithClient(client))
	}

	return custom.New(cfg.URL, options...)
}
