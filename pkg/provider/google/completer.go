package google

import (
	"context"
	"errors"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config: cfg,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	system, conversation := provider.SplitMessages(messages)

	contents, err := convertContents(conversation)

	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}

	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	if options.Stop != nil {
		config.StopSequences = options.Stop
	}

	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	if options.Temperature != nil {
		config.Temperature = genai.Ptr(*options.Temperature)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)

	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, provider.ErrEmptyCompletion
	}

	result := &provider.Completion{
		ID:    uuid.NewString(),
		Model: c.model,

		Reason: toCompletionResult(resp.Candidates[0]),

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
		},

		Usage: toUsage(resp.UsageMetadata),
	}

	if text := resp.Text(); text != "" {
		result.Message.Content = append(result.Message.Content, provider.TextContent(text))
	}

	return result, nil
}

func convertContents(messages []provider.Message) ([]*genai.Content, error) {
	var result []*genai.Content

	for _, m := range messages {
		var parts []*genai.Part

		for _, c := range m.Content {
			if c.Text != "" {
				parts = append(parts, genai.NewPartFromText(c.Text))
			}

			if c.File != nil {
				if !provider.IsImage(c.File.ContentType) {
					return nil, errors.New("unsupported content type")
				}

				parts = append(parts, genai.NewPartFromBytes(c.File.Content, c.File.ContentType))
			}
		}

		role := genai.Role(genai.RoleUser)

		if m.Role == provider.MessageRoleAssistant {
			role = genai.RoleModel
		}

		result = append(result, genai.NewContentFromParts(parts, role))
	}

	return result, nil
}

func toCompletionResult(candidate *genai.Candidate) provider.CompletionReason {
	if candidate == nil {
		return ""
	}

	switch candidate.FinishReason {
	case genai.FinishReasonStop:
		return provider.CompletionReasonStop

	case genai.FinishReasonMaxTokens:
		return provider.CompletionReasonLength

	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return provider.CompletionReasonFilter

	default:
		return ""
	}
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *provider.Usage {
	if metadata == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}
