package gtts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/text"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxCharactersPerRequest is the longest text the translate speech endpoint accepts.
const MaxCharactersPerRequest = 100

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
}

func NewSynthesizer(url string, options ...Option) (*Synthesizer, error) {
	if url == "" {
		url = "https://translate.google.com/translate_tts"
	}

	cfg := &Config{
		url: url,

		language: "en",

		client: http.DefaultClient,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	language := s.language

	if options.Language != "" {
		language = options.Language
	}

	splitter := text.NewSplitter()
	splitter.ChunkSize = MaxCharactersPerRequest

	chunks := splitter.Split(content)

	if len(chunks) == 0 {
		return nil, errors.New("no text to synthesize")
	}

	parts := make([][]byte, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, chunk := range chunks {
		g.Go(func() error {
			data, err := s.fetch(ctx, chunk, language, i, len(chunks))
			parts[i] = data
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: "gtts-" + language,

		Content:     bytes.Join(parts, nil),
		ContentType: "audio/mpeg",
	}, nil
}

func (s *Synthesizer) fetch(ctx context.Context, chunk, language string, index, total int) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", language)
	query.Set("q", chunk)
	query.Set("total", strconv.Itoa(total))
	query.Set("idx", strconv.Itoa(index))
	query.Set("textlen", strconv.Itoa(len([]rune(chunk))))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+query.Encode(), nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	return io.ReadAll(resp.Body)
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
