package caption

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	text string
	err  error

	messages []provider.Message
	options  *provider.CompleteOptions
}

func (c *fakeCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	c.messages = messages
	c.options = options

	if c.err != nil {
		return nil, c.err
	}

	return &provider.Completion{
		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: []provider.Content{provider.TextContent(c.text)},
		},
	}, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if e.err != nil {
		return nil, e.err
	}

	return &extractor.Document{Text: e.text}, nil
}

var image = provider.File{
	Name:        "street.jpg",
	Content:     []byte{0xff, 0xd8, 0xff},
	ContentType: "image/jpeg",
}

func TestCaptionWithDetectedText(t *testing.T) {
	completer := &fakeCompleter{text: "Text detected: Main Street. Describe the scene: a busy road"}

	c, err := New(completer, WithExtractor(&fakeExtractor{text: "Main Street 42 St"}))
	require.NoError(t, err)

	result, err := c.Caption(t.Context(), image)
	require.NoError(t, err)

	require.Equal(t, "Main Street", result.DetectedText)
	require.Equal(t, "Text detected: Main Street. Describe the scene:", result.Prompt)
	require.Equal(t, "Main Street.  a busy road", result.Caption)

	require.Len(t, completer.messages, 1)
	require.Equal(t, result.Prompt, completer.messages[0].Text())
	require.Len(t, completer.messages[0].Files(), 1)
	require.Equal(t, DefaultMaxTokens, *completer.options.MaxTokens)
}

func TestCaptionWithoutExtractor(t *testing.T) {
	completer := &fakeCompleter{text: "a cat sleeping"}

	c, err := New(completer, WithMaxTokens(20))
	require.NoError(t, err)

	result, err := c.Caption(t.Context(), image)
	require.NoError(t, err)

	require.Equal(t, "a cat sleeping", result.Caption)
	require.Equal(t, "Describe the scene:", result.Prompt)
	require.Equal(t, 20, *completer.options.MaxTokens)
}

func TestCaptionDetectionFailure(t *testing.T) {
	completer := &fakeCompleter{text: "a parked car"}

	c, err := New(completer, WithExtractor(&fakeExtractor{err: errors.New("ocr unavailable")}))
	require.NoError(t, err)

	result, err := c.Caption(t.Context(), image)
	require.NoError(t, err)

	require.Empty(t, result.DetectedText)
	require.Equal(t, "a parked car", result.Caption)
}

func TestCaptionCompletionFailure(t *testing.T) {
	c, err := New(&fakeCompleter{err: errors.New("model offline")})
	require.NoError(t, err)

	_, err = c.Caption(t.Context(), image)
	require.EqualError(t, err, "model offline")
}

func TestCaptionEmptyFile(t *testing.T) {
	c, err := New(&fakeCompleter{})
	require.NoError(t, err)

	_, err = c.Caption(t.Context(), provider.File{Name: "empty.jpg"})
	require.Error(t, err)
}
