package replicate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Completer = (*Completer)(nil)

// Completer runs vision-language models hosted on Replicate that take an
// "image" and a "prompt" input and produce text, e.g. "yorickvp/llava-13b".
type Completer struct {
	*Client
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	client, err := New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Completer{
		Client: client,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	system, conversation := provider.SplitMessages(messages)

	if len(conversation) == 0 {
		return nil, errors.New("no input message")
	}

	message := conversation[len(conversation)-1]
	files := message.Files()

	if len(files) != 1 {
		return nil, errors.New("exactly one image input is supported")
	}

	file, err := c.UploadFile(ctx, files[0])

	if err != nil {
		return nil, err
	}

	defer c.DeleteFile(context.WithoutCancel(ctx), file.ID)

	input := PredictionInput{
		"image":  file.URLs["get"],
		"prompt": message.Text(),
	}

	if system != "" {
		input["system_prompt"] = system
	}

	if options.MaxTokens != nil {
		input["max_tokens"] = *options.MaxTokens
	}

	if options.Temperature != nil {
		input["temperature"] = *options.Temperature
	}

	output, err := c.Run(ctx, input)

	if err != nil {
		return nil, err
	}

	text, err := convertOutput(output)

	if err != nil {
		return nil, err
	}

	return &provider.Completion{
		ID:     uuid.NewString(),
		Model:  c.model,
		Reason: provider.CompletionReasonStop,

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: []provider.Content{
				provider.TextContent(strings.TrimSpace(text)),
			},
		},
	}, nil
}

// convertOutput flattens the model output; text models stream their
// answer as a list of tokens.
func convertOutput(output PredictionOutput) (string, error) {
	switch v := output.(type) {
	case string:
		return v, nil

	case []string:
		return strings.Join(v, ""), nil

	case []any:
		var builder strings.Builder

		for _, item := range v {
			s, ok := item.(string)

			if !ok {
				return "", fmt.Errorf("unexpected output item %T", item)
			}

			builder.WriteString(s)
		}

		return builder.String(), nil

	case map[string]any:
		if s, ok := v["caption"].(string); ok {
			return s, nil
		}

		if s, ok := v["text"].(string); ok {
			return s, nil
		}
	}

	return "", fmt.Errorf("unexpected output %T", output)
}
