package config

import (
	"github.com/adrianliechti/narrator/pkg/caption"
	"github.com/adrianliechti/narrator/pkg/narration"
)

type captionConfig struct {
	Completer string `yaml:"completer"`
	Extractor string `yaml:"extractor"`

	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"`

	OCRWords    int    `yaml:"ocr_words"`
	OCRLanguage string `yaml:"ocr_language"`

	// DisableOCR captions images without detecting text first.
	DisableOCR bool `yaml:"disable_ocr"`
}

type speechConfig struct {
	Synthesizer string `yaml:"synthesizer"`

	Voice    string   `yaml:"voice"`
	Language string   `yaml:"language"`
	Speed    *float32 `yaml:"speed"`

	Naming string `yaml:"naming"`
}

func (cfg *Config) registerNarrator(f *configFile) error {
	completer, err := cfg.Completer(f.Caption.Completer)

	if err != nil {
		return err
	}

	captionOptions := []caption.Option{
		caption.WithMaxTokens(f.Caption.MaxTokens),
		caption.WithWords(f.Caption.OCRWords),
		caption.WithTemperature(f.Caption.Temperature),
		caption.WithLanguage(f.Caption.OCRLanguage),
	}

	if !f.Caption.DisableOCR && (cfg.extractor != nil || f.Caption.Extractor != "") {
		extractor, err := cfg.Extractor(f.Caption.Extractor)

		if err != nil {
			return err
		}

		captionOptions = append(captionOptions, caption.WithExtractor(extractor))
	}

	captioner, err := caption.New(completer, captionOptions...)

	if err != nil {
		return err
	}

	synthesizer, err := cfg.Synthesizer(f.Speech.Synthesizer)

	if err != nil {
		return err
	}

	narrationOptions := []narration.Option{
		narration.WithVoice(f.Speech.Voice),
		narration.WithLanguage(f.Speech.Language),
		narration.WithSpeed(f.Speech.Speed),
		narration.WithNaming(narration.Naming(f.Speech.Naming)),
	}

	if cfg.uploads != nil {
		narrationOptions = append(narrationOptions, narration.WithUploads(cfg.uploads))
	}

	narrator, err := narration.New(captioner, synthesizer, cfg.audio, narrationOptions...)

	if err != nil {
		return err
	}

	cfg.Narrator = narrator

	return nil
}
