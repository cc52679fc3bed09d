package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/provider/gtts"
	"github.com/adrianliechti/narrator/pkg/provider/openai"
	"github.com/adrianliechti/narrator/pkg/provider/polly"
)

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if s, ok := cfg.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) registerSynthesizers(f *configFile) error {
	var configs map[string]providerConfig

	if err := f.Synthesizers.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Synthesizers.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		model, err := createModelContext(config)

		if err != nil {
			return err
		}

		synthesizer, err := createSynthesizer(config, model)

		if err != nil {
			return err
		}

		if _, ok := synthesizer.(limiter.Synthesizer); !ok {
			synthesizer = limiter.NewSynthesizer(createLimiter(config.Limit), synthesizer)
		}

		if _, ok := synthesizer.(otel.Synthesizer); !ok {
			synthesizer = otel.NewSynthesizer(strings.ToLower(config.Type), model.ID, synthesizer)
		}

		cfg.RegisterSynthesizer(id, synthesizer)
	}

	if cfg.synthesizer == nil {
		synthesizer, err := gtts.NewSynthesizer("")

		if err != nil {
			return err
		}

		cfg.RegisterSynthesizer("gtts", otel.NewSynthesizer("gtts", "", synthesizer))
	}

	return nil
}

func createSynthesizer(cfg providerConfig, model modelContext) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "gtts", "google-translate":
		return gttsSynthesizer(cfg, model)

	case "openai", "openai-compatible", "azure":
		return openaiSynthesizer(cfg, model)

	case "polly", "aws":
		return pollySynthesizer(cfg, model)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func gttsSynthesizer(cfg providerConfig, model modelContext) (provider.Synthesizer, error) {
	var options []gtts.Option

	if model.Client != nil {
		options = append(options, gtts.WithClient(model.Client))
	}

	return gtts.NewSynthesizer(cfg.URL, options...)
}

func openaiSynthesizer(cfg providerConfig, model modelContext) (provider.Synthesizer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if cfg.Voice != "" {
		options = append(options, openai.WithVoice(cfg.Voice))
	}

	if model.Client != nil {
		options = append(options, openai.WithClient(model.Client))
	}

	return openai.NewSynthesizer(cfg.URL, model.ID, options...)
}

func pollySynthesizer(cfg providerConfig, model modelContext) (provider.Synthesizer, error) {
	var options []polly.Option

	if cfg.Region != "" {
		options = append(options, polly.WithRegion(cfg.Region))
	}

	if cfg.Voice != "" {
		options = append(options, polly.WithVoice(cfg.Voice))
	}

	if cfg.Engine != "" {
		options = append(options, polly.WithEngine(cfg.Engine))
	}

	if model.Client != nil {
		options = append(options, polly.WithClient(model.Client))
	}

	return polly.NewSynthesizer(options...)
}
