package openai

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/openai/openai-go/v3"
)

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		if msg := strings.TrimSpace(apierr.Message); msg != "" {
			return errors.New(msg)
		}
	}

	return err
}

func toCompletionResult(val string) provider.CompletionReason {
	switch val {
	case "stop":
		return provider.CompletionReasonStop

	case "length":
		return provider.CompletionReasonLength

	case "content_filter":
		return provider.CompletionReasonFilter

	default:
		return ""
	}
}

func toUsage(usage openai.CompletionUsage) *provider.Usage {
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(usage.PromptTokens),
		OutputTokens: int(usage.CompletionTokens),
	}
}

var ReasoningModels = []string{
	"gpt-5",
	"gpt-5-mini",
	"gpt-5-nano",

	"o1",
	"o1-mini",
	"o3",
	"o3-mini",
	"o4-mini",
}
