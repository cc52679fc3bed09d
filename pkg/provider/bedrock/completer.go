package bedrock

import (
	"context"
	"errors"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config

	client *bedrockruntime.Client
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
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

	client := bedrockruntime.NewFromConfig(config, func(o *bedrockruntime.Options) {
		if cfg.url != "" {
			o.BaseEndpoint = aws.String(cfg.url)
		}
	})

	return &Completer{
		Config: cfg,

		client: client,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req, err := c.convertConverseInput(messages, options)

	if err != nil {
		return nil, err
	}

	resp, err := c.client.Converse(ctx, req)

	if err != nil {
		return nil, err
	}

	return &provider.Completion{
		ID:     uuid.NewString(),
		Model:  c.model,
		Reason: toCompletionResult(resp.StopReason),

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: toContent(resp.Output),
		},

		Usage: toUsage(resp.Usage),
	}, nil
}

func (c *Completer) convertConverseInput(input []provider.Message, options *provider.CompleteOptions) (*bedrockruntime.ConverseInput, error) {
	system, conversation := provider.SplitMessages(input)

	messages, err := convertMessages(conversation)

	if err != nil {
		return nil, err
	}

	req := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),

		Messages: messages,
	}

	if system != "" {
		req.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{
				Value: system,
			},
		}
	}

	if options.MaxTokens != nil || options.Temperature != nil || options.Stop != nil {
		req.InferenceConfig = &types.InferenceConfiguration{
			StopSequences: options.Stop,
		}

		if options.MaxTokens != nil {
			req.InferenceConfig.MaxTokens = aws.Int32(int32(*options.MaxTokens))
		}

		if options.Temperature != nil {
			req.InferenceConfig.Temperature = aws.Float32(*options.Temperature)
		}
	}

	return req, nil
}

func convertMessages(messages []provider.Message) ([]types.Message, error) {
	var result []types.Message

	for _, m := range messages {
		message := types.Message{
			Role: types.ConversationRoleUser,
		}

		if m.Role == provider.MessageRoleAssistant {
			message.Role = types.ConversationRoleAssistant
		}

		for _, c := range m.Content {
			if c.Text != "" {
				message.Content = append(message.Content, &types.ContentBlockMemberText{
					Value: c.Text,
				})
			}

			if c.File != nil {
				block, err := convertFile(c.File)

				if err != nil {
					return nil, err
				}

				message.Content = append(message.Content, block)
			}
		}

		result = append(result, message)
	}

	return result, nil
}

func convertFile(val *provider.File) (types.ContentBlock, error) {
	format, ok := convertImageFormat(val.ContentType)

	if !ok {
		return nil, errors.New("unsupported file format")
	}

	return &types.ContentBlockMemberImage{
		Value: types.ImageBlock{
			Format: format,
			Source: &types.ImageSourceMemberBytes{
				Value: val.Content,
			},
		},
	}, nil
}

func convertImageFormat(mime string) (types.ImageFormat, bool) {
	switch mime {
	case "image/png":
		return types.ImageFormatPng, true

	case "image/jpeg":
		return types.ImageFormatJpeg, true

	case "image/gif":
		return types.ImageFormatGif, true

	case "image/webp":
		return types.ImageFormatWebp, true
	}

	return "", false
}

func toCompletionResult(val types.StopReason) provider.CompletionReason {
	switch val {
	case types.StopReasonEndTurn, types.StopReasonStopSequence:
		return provider.CompletionReasonStop

	case types.StopReasonMaxTokens:
		return provider.CompletionReasonLength

	case types.StopReasonGuardrailIntervened, types.StopReasonContentFiltered:
		return provider.CompletionReasonFilter

	default:
		return ""
	}
}

func toContent(val types.ConverseOutput) []provider.Content {
	message, ok := val.(*types.ConverseOutputMemberMessage)

	if !ok {
		return nil
	}

	var parts []provider.Content

	for _, b := range message.Value.Content {
		if block, ok := b.(*types.ContentBlockMemberText); ok {
			parts = append(parts, provider.TextContent(block.Value))
		}
	}

	return parts
}

func toUsage(val *types.TokenUsage) *provider.Usage {
	if val == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(aws.ToInt32(val.InputTokens)),
		OutputTokens: int(aws.ToInt32(val.OutputTokens)),
	}
}
