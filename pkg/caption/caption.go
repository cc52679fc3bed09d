// Package caption describes images, optionally conditioning the
// description on text recognized in them.
package caption

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"
)

// DefaultMaxTokens bounds the number of generated caption tokens.
const DefaultMaxTokens = 50

type Captioner struct {
	completer provider.Completer
	extractor extractor.Provider

	words     int
	maxTokens int

	language    string
	temperature *float32
}

type Result struct {
	Caption string

	// DetectedText is the cleaned OCR text used to condition the caption.
	DetectedText string

	Prompt string
}

func New(completer provider.Completer, options ...Option) (*Captioner, error) {
	if completer == nil {
		return nil, errors.New("missing completer")
	}

	c := &Captioner{
		completer: completer,

		words:     DefaultWords,
		maxTokens: DefaultMaxTokens,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Captioner) Caption(ctx context.Context, file provider.File) (*Result, error) {
	if len(file.Content) == 0 {
		return nil, errors.New("empty file")
	}

	clean := CleanText(c.detect(ctx, file), c.words)
	prompt := Prompt(clean)

	slog.DebugContext(ctx, "captioning image", "file", file.Name, "detected_text", clean)

	messages := []provider.Message{
		{
			Role: provider.MessageRoleUser,

			Content: []provider.Content{
				provider.TextContent(prompt),
				provider.FileContent(&file),
			},
		},
	}

	maxTokens := c.maxTokens

	options := &provider.CompleteOptions{
		MaxTokens:   &maxTokens,
		Temperature: c.temperature,
	}

	completion, err := c.completer.Complete(ctx, messages, options)

	if err != nil {
		return nil, err
	}

	return &Result{
		Caption:      Polish(completion.Text(), clean),
		DetectedText: clean,

		Prompt: prompt,
	}, nil
}

// detect runs OCR on file. Failures are logged and count as no text.
func (c *Captioner) detect(ctx context.Context, file provider.File) string {
	if c.extractor == nil {
		return ""
	}

	doc, err := c.extractor.Extract(ctx, file, &extractor.ExtractOptions{
		Language: c.language,
	})

	if err != nil {
		slog.WarnContext(ctx, "text detection failed", "file", file.Name, "error", err)
		return ""
	}

	return DetectedText(doc, c.words)
}
