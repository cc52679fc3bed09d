package otel

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/provider"

	"go.opentelemetry.io/otel"
)

type Synthesizer interface {
	Observable
	provider.Synthesizer
}

type observableSynthesizer struct {
	model    string
	provider string

	synthesizer provider.Synthesizer
}

func NewSynthesizer(provider, model string, p provider.Synthesizer) Synthesizer {
	return &observableSynthesizer{
		synthesizer: p,

		model:    model,
		provider: provider,
	}
}

func (p *observableSynthesizer) otelSetup() {
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+p.model)
	defer span.End()

	span.SetAttributes(
		String("synthesizer.provider", p.provider),
		Int("synthesizer.input_length", len(content)),
	)

	result, err := p.synthesizer.Synthesize(ctx, content, options)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return result, nil
}
