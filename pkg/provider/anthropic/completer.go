package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	messages anthropic.MessageService
}

func NewCompleter(url, model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req, err := c.convertMessageRequest(messages, options)

	if err != nil {
		return nil, err
	}

	message, err := c.messages.New(ctx, *req)

	if err != nil {
		return nil, err
	}

	result := &provider.Completion{
		ID:    message.ID,
		Model: string(message.Model),

		Reason: toCompletionResult(string(message.StopReason)),

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
		},

		Usage: toUsage(message.Usage),
	}

	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			result.Message.Content = append(result.Message.Content, provider.TextContent(block.Text))
		}
	}

	return result, nil
}

func (c *Completer) convertMessageRequest(input []provider.Message, options *provider.CompleteOptions) (*anthropic.MessageNewParams, error) {
	req := &anthropic.MessageNewParams{
		Model: anthropic.Model(c.model),

		MaxTokens: 1024,
	}

	if options.Stop != nil {
		req.StopSequences = options.Stop
	}

	if options.MaxTokens != nil {
		req.MaxTokens = int64(*options.MaxTokens)
	}

	if options.Temperature != nil {
		req.Temperature = anthropic.Float(float64(*options.Temperature))
	}

	system, conversation := provider.SplitMessages(input)

	if system != "" {
		req.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	for _, m := range conversation {
		var blocks []anthropic.ContentBlockParamUnion

		for _, c := range m.Content {
			if text := strings.TrimRight(c.Text, " \t\n\r"); text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(text))
			}

			if c.File != nil && m.Role == provider.MessageRoleUser {
				if !provider.IsImage(c.File.ContentType) {
					return nil, errors.New("unsupported content type")
				}

				blocks = append(blocks, anthropic.NewImageBlock(anthropic.Base64ImageSourceParam{
					Data:      base64.StdEncoding.EncodeToString(c.File.Content),
					MediaType: anthropic.Base64ImageSourceMediaType(c.File.ContentType),
				}))
			}
		}

		switch m.Role {
		case provider.MessageRoleUser:
			req.Messages = append(req.Messages, anthropic.NewUserMessage(blocks...))

		case provider.MessageRoleAssistant:
			req.Messages = append(req.Messages, anthropic.NewAssistantMessage(blocks...))
		}
	}

	return req, nil
}

func toCompletionResult(val string) provider.CompletionReason {
	switch val {
	case "end_turn", "stop_sequence":
		return provider.CompletionReasonStop

	case "max_tokens":
		return provider.CompletionReasonLength

	case "refusal":
		return provider.CompletionReasonFilter

	default:
		return ""
	}
}

func toUsage(usage anthropic.Usage) *provider.Usage {
	if usage.InputTokens == 0 && usage.OutputTokens == 0 {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(usage.InputTokens),
		OutputTokens: int(usage.OutputTokens),
	}
}
