package extractor

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"
)

type Provider interface {
	Extract(ctx context.Context, file File, options *ExtractOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File = provider.File

type ExtractOptions struct {
	Language string
}

type Document struct {
	Text string

	Pages  []Page
	Blocks []Block
}

type Page struct {
	Page int

	Unit   string
	Width  float64
	Height float64
}

type Block struct {
	Page int
	Text string

	Score   float64
	Polygon [][2]float64 // [[x1, y1], [x2, y2], [x3, y3], ...]
}

// Words returns the recognized text of the document split into words, in
// reading order. Block texts are preferred over the flattened document text.
func (d *Document) Words() []string {
	if d == nil {
		return nil
	}

	var parts []string

	for _, b := range d.Blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}

	if len(parts) == 0 {
		return strings.Fields(d.Text)
	}

	return strings.Fields(strings.Join(parts, " "))
}
