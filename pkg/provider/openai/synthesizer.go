package openai

import (
	"context"
	"io"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := openai.AudioSpeechNewParamsVoiceAlloy

	if s.voice != "" {
		voice = openai.AudioSpeechNewParamsVoice(s.voice)
	}

	if options.Voice != "" {
		voice = openai.AudioSpeechNewParamsVoice(options.Voice)
	}

	format, contentType := convertFormat(options.Format)

	req := openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(s.model),
		Input: content,

		Voice: voice,

		ResponseFormat: format,
	}

	if options.Speed != nil {
		req.Speed = openai.Float(float64(*options.Speed))
	}

	if options.Instructions != "" {
		req.Instructions = openai.String(options.Instructions)
	}

	result, err := s.speech.New(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func convertFormat(val string) (openai.AudioSpeechNewParamsResponseFormat, string) {
	switch val {
	case "wav":
		return openai.AudioSpeechNewParamsResponseFormatWAV, "audio/wav"

	case "opus":
		return openai.AudioSpeechNewParamsResponseFormatOpus, "audio/ogg"

	case "aac":
		return openai.AudioSpeechNewParamsResponseFormatAAC, "audio/aac"

	case "flac":
		return openai.AudioSpeechNewParamsResponseFormatFLAC, "audio/flac"

	default:
		return openai.AudioSpeechNewParamsResponseFormatMP3, "audio/mpeg"
	}
}
