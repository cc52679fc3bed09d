package polly

import (
	"context"
	"io"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// MaxCharactersPerRequest is the maximum number of billed characters Polly accepts.
const MaxCharactersPerRequest = 3000

// DefaultVoiceID is the default voice to use when synthesizing speech.
const DefaultVoiceID = "Joanna"

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config

	client *polly.Client
}

func NewSynthesizer(options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		voice:  DefaultVoiceID,
		engine: string(types.EngineNeural),
	}

	for _, option := range options {
		option(cfg)
	}

	var loadOptions []func(*config.LoadOptions) error

	if cfg.region != "" {
		loadOptions = append(loadOptions, config.WithRegion(cfg.region))
	}

	if cfg.client != nil {
		loadOptions = append(loadOptions, config.WithHTTPClient(cfg.client))
	}

	config, err := config.LoadDefaultConfig(context.Background(), loadOptions...)

	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		Config: cfg,

		client: polly.NewFromConfig(config),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	if r := []rune(content); len(r) > MaxCharactersPerRequest {
		content = string(r[:MaxCharactersPerRequest])
	}

	voice := s.voice

	if options.Voice != "" {
		voice = options.Voice
	}

	input := &polly.SynthesizeSpeechInput{
		Text: aws.String(content),

		Engine:       types.Engine(s.engine),
		VoiceId:      types.VoiceId(voice),
		OutputFormat: types.OutputFormatMp3,
	}

	if code := languageCode(options.Language); code != "" {
		input.LanguageCode = types.LanguageCode(code)
	}

	resp, err := s.client.SynthesizeSpeech(ctx, input)

	if err != nil {
		return nil, err
	}

	defer resp.AudioStream.Close()

	data, err := io.ReadAll(resp.AudioStream)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: voice,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}

// languageCode maps short language tags to the regional codes Polly expects.
func languageCode(lang string) string {
	switch lang {
	case "":
		return ""
	case "en":
		return "en-US"
	case "de":
		return "de-DE"
	case "fr":
		return "fr-FR"
	case "es":
		return "es-ES"
	case "it":
		return "it-IT"
	case "ja":
		return "ja-JP"
	}

	return lang
}
