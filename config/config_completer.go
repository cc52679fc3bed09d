package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/provider/anthropic"
	"github.com/adrianliechti/narrator/pkg/provider/bedrock"
	"github.com/adrianliechti/narrator/pkg/provider/clipcap"
	"github.com/adrianliechti/narrator/pkg/provider/google"
	"github.com/adrianliechti/narrator/pkg/provider/openai"
	"github.com/adrianliechti/narrator/pkg/provider/replicate"
)

func (cfg *Config) RegisterCompleter(id string, p provider.Completer) {
	if cfg.completer == nil {
		cfg.completer = make(map[string]provider.Completer)
	}

	if _, ok := cfg.completer[""]; !ok {
		cfg.completer[""] = p
	}

	cfg.completer[id] = p
}

func (cfg *Config) Completer(id string) (provider.Completer, error) {
	if cfg.completer != nil {
		if c, ok := cfg.completer[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("completer not found: " + id)
}

func (cfg *Config) registerCompleters(f *configFile) error {
	var configs map[string]providerConfig

	if err := f.Completers.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Completers.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		model, err := createModelContext(config)

		if err != nil {
			return err
		}

		completer, err := createCompleter(config, model)

		if err != nil {
			return err
		}

		if _, ok := completer.(limiter.Completer); !ok {
			completer = limiter.NewCompleter(createLimiter(config.Limit), completer)
		}

		if _, ok := completer.(otel.Completer); !ok {
			completer = otel.NewCompleter(strings.ToLower(config.Type), model.ID, completer)
		}

		cfg.RegisterCompleter(id, completer)
	}

	return nil
}

func createCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	switch strings.ToLower(cfg.Type) {
	case "anthropic":
		return anthropicCompleter(cfg, model)

	case "bedrock":
		return bedrockCompleter(cfg, model)

	case "clipcap":
		return clipcapCompleter(cfg, model)

	case "gemini", "google":
		return googleCompleter(cfg, model)

	case "openai", "openai-compatible", "azure":
		return openaiCompleter(cfg, model)

	case "replicate":
		return replicateCompleter(cfg, model)

	default:
		return nil, errors.New("invalid completer type: " + cfg.Type)
	}
}

func anthropicCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []anthropic.Option

	if cfg.Token != "" {
		options = append(options, anthropic.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, anthropic.WithClient(model.Client))
	}

	return anthropic.NewCompleter(cfg.URL, model.ID, options...)
}

func bedrockCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []bedrock.Option

	if cfg.URL != "" {
		options = append(options, bedrock.WithURL(cfg.URL))
	}

	if cfg.Region != "" {
		options = append(options, bedrock.WithRegion(cfg.Region))
	}

	if model.Client != nil {
		options = append(options, bedrock.WithClient(model.Client))
	}

	return bedrock.NewCompleter(model.ID, options...)
}

func clipcapCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []clipcap.Option

	if cfg.Token != "" {
		options = append(options, clipcap.WithToken(cfg.Token))
	}

	if cfg.EOS != nil {
		options = append(options, clipcap.WithEOS(*cfg.EOS))
	}

	if model.Client != nil {
		options = append(options, clipcap.WithClient(model.Client))
	}

	return clipcap.New(cfg.URL, model.ID, options...)
}

func googleCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []google.Option

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, google.WithClient(model.Client))
	}

	return google.NewCompleter(model.ID, options...)
}

func openaiCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, openai.WithClient(model.Client))
	}

	return openai.NewCompleter(cfg.URL, model.ID, options...)
}

func replicateCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []replicate.Option

	if cfg.URL != "" {
		options = append(options, replicate.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, replicate.WithToken(cfg.Token))
	}

	return replicate.NewCompleter(model.ID, options...)
}
