package provider

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmptyCompletion = errors.New("empty completion")
)

type Completer interface {
	Complete(ctx context.Context, messages []Message, options *CompleteOptions) (*Completion, error)
}

type Message struct {
	Role MessageRole

	Content []Content
}

func SystemMessage(content string) Message {
	return Message{
		Role: MessageRoleSystem,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func UserMessage(content string) Message {
	return Message{
		Role: MessageRoleUser,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func AssistantMessage(content string) Message {
	return Message{
		Role: MessageRoleAssistant,

		Content: []Content{
			{
				Text: content,
			},
		},
	}
}

func (m Message) Text() string {
	var parts []string

	for _, c := range m.Content {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}

	return strings.Join(parts, "\n\n")
}

func (m Message) Files() []File {
	var files []File

	for _, c := range m.Content {
		if c.File != nil {
			files = append(files, *c.File)
		}
	}

	return files
}

func TextContent(val string) Content {
	return Content{
		Text: val,
	}
}

func FileContent(val *File) Content {
	return Content{
		File: val,
	}
}

type Content struct {
	Text string

	File *File
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type CompleteOptions struct {
	Stop []string

	MaxTokens   *int
	Temperature *float32
}

type Completion struct {
	ID    string
	Model string

	Reason CompletionReason

	Message *Message

	Usage *Usage
}

type CompletionReason string

const (
	CompletionReasonStop   CompletionReason = "stop"
	CompletionReasonLength CompletionReason = "length"
	CompletionReasonFilter CompletionReason = "filter"
)

func (c *Completion) Text() string {
	if c == nil || c.Message == nil {
		return ""
	}

	return c.Message.Text()
}

// SplitMessages separates system instructions from the conversation and
// collects the text of the system messages.
func SplitMessages(messages []Message) (string, []Message) {
	var system []string
	var result []Message

	for _, m := range messages {
		if m.Role == MessageRoleSystem {
			if text := m.Text(); text != "" {
				system = append(system, text)
			}

			continue
		}

		result = append(result, m)
	}

	return strings.Join(system, "\n\n"), result
}

func IsImage(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		return true
	}

	return false
}
