package clipcap

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/narrator/pkg/decoder"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var (
	_ provider.Completer = (*Client)(nil)

	_ decoder.Model     = (*Client)(nil)
	_ decoder.Tokenizer = (*Client)(nil)
)

// Client talks to an inference server hosting a CLIP prefix captioning model
// (CLIP image encoder, projection to GPT-2 prefix embeddings, GPT-2 head) and
// runs greedy decoding locally, one server round trip per token.
type Client struct {
	client *http.Client

	url   string
	token string

	model string
	eos   int
}

func New(url, model string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url:   strings.TrimRight(url, "/"),
		model: model,

		eos: GPT2EOS,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	_, conversation := provider.SplitMessages(messages)

	if len(conversation) == 0 {
		return nil, errors.New("no input message")
	}

	message := conversation[len(conversation)-1]
	files := message.Files()

	if len(files) != 1 {
		return nil, errors.New("exactly one image input is supported")
	}

	prefix, err := c.Prefix(ctx, files[0])

	if err != nil {
		return nil, err
	}

	ids, err := c.Encode(ctx, message.Text())

	if err != nil {
		return nil, err
	}

	decodeOptions := &decoder.Options{}

	if options.MaxTokens != nil {
		decodeOptions.MaxLength = *options.MaxTokens
	}

	output, err := decoder.Greedy(ctx, c, prefix, ids, c.eos, decodeOptions)

	if err != nil {
		return nil, err
	}

	text, err := c.Decode(ctx, output)

	if err != nil {
		return nil, err
	}

	reason := provider.CompletionReasonStop

	if len(output)-len(ids) >= decoderLimit(decodeOptions) {
		reason = provider.CompletionReasonLength
	}

	return &provider.Completion{
		ID:     uuid.NewString(),
		Model:  c.model,
		Reason: reason,

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: []provider.Content{
				provider.TextContent(text),
			},
		},

		Usage: &provider.Usage{
			InputTokens:  len(ids),
			OutputTokens: len(output) - len(ids),
		},
	}, nil
}

// Prefix encodes the image into prefix embeddings.
func (c *Client) Prefix(ctx context.Context, file provider.File) (decoder.Prefix, error) {
	req := PrefixRequest{
		Image:       base64.StdEncoding.EncodeToString(file.Content),
		ContentType: file.ContentType,
	}

	var resp PrefixResponse

	if err := c.post(ctx, "/prefix", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Prefix) == 0 {
		return nil, errors.New("empty prefix")
	}

	return resp.Prefix, nil
}

func (c *Client) Logits(ctx context.Context, prefix decoder.Prefix, ids []int) ([]float32, error) {
	embeddings, ok := prefix.([][]float32)

	if !ok {
		return nil, errors.New("invalid prefix")
	}

	req := LogitsRequest{
		Prefix: embeddings,
		IDs:    ids,
	}

	var resp LogitsResponse

	if err := c.post(ctx, "/logits", req, &resp); err != nil {
		return nil, err
	}

	return resp.Logits, nil
}

func (c *Client) Encode(ctx context.Context, text string) ([]int, error) {
	var resp TokenizeResponse

	if err := c.post(ctx, "/tokenize", TokenizeRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	return resp.IDs, nil
}

func (c *Client) Decode(ctx context.Context, ids []int) (string, error) {
	var resp DetokenizeResponse

	if err := c.post(ctx, "/detokenize", DetokenizeRequest{IDs: ids}, &resp); err != nil {
		return "", err
	}

	return resp.Text, nil
}

func (c *Client) EOS() int {
	return c.eos
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)

	if err != nil {
		return err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return convertError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decoderLimit(options *decoder.Options) int {
	if options.MaxLength > 0 {
		return options.MaxLength
	}

	return decoder.DefaultMaxLength
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
