package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/narrator/pkg/extractor"

	"github.com/stretchr/testify/require"
)

type extractorFunc func(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error)

func (f extractorFunc) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	return f(ctx, file, options)
}

func result(text string, err error) extractor.Provider {
	return extractorFunc(func(context.Context, extractor.File, *extractor.ExtractOptions) (*extractor.Document, error) {
		if err != nil {
			return nil, err
		}

		return &extractor.Document{Text: text}, nil
	})
}

func TestFirstSuccess(t *testing.T) {
	e := New(
		result("", extractor.ErrUnsupported),
		result("", errors.New("timeout")),
		result("second", nil),
		result("third", nil),
	)

	doc, err := e.Extract(t.Context(), extractor.File{}, nil)
	require.NoError(t, err)
	require.Equal(t, "second", doc.Text)
}

func TestAllUnsupported(t *testing.T) {
	e := New(result("", extractor.ErrUnsupported))

	_, err := e.Extract(t.Context(), extractor.File{}, nil)
	require.ErrorIs(t, err, extractor.ErrUnsupported)
}

func TestAllFailed(t *testing.T) {
	e := New(result("", errors.New("timeout")), result("", extractor.ErrUnsupported))

	_, err := e.Extract(t.Context(), extractor.File{}, nil)
	require.EqualError(t, err, "timeout")
}
