// Package decoder generates token sequences from a prefix-conditioned
// language model.
package decoder

import (
	"context"
	"errors"
)

// DefaultMaxLength bounds the number of generated tokens.
const DefaultMaxLength = 50

var (
	ErrEmptyLogits = errors.New("model returned empty logits")
)

// Prefix is an opaque handle to the projected image embedding that is
// prepended to the token embeddings on every step.
type Prefix any

type Model interface {
	// Logits returns the next-token scores for the last position of
	// prefix followed by the embeddings of ids.
	Logits(ctx context.Context, prefix Prefix, ids []int) ([]float32, error)
}

type Tokenizer interface {
	Encode(ctx context.Context, text string) ([]int, error)
	Decode(ctx context.Context, ids []int) (string, error)

	EOS() int
}

type Options struct {
	MaxLength int
}

// Greedy extends ids one argmax token at a time until the model emits eos
// or MaxLength tokens have been generated. The eos token is not appended.
// The returned slice holds the prompt ids followed by the generated ids.
func Greedy(ctx context.Context, model Model, prefix Prefix, ids []int, eos int, options *Options) ([]int, error) {
	if options == nil {
		options = new(Options)
	}

	maxLength := options.MaxLength

	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	result := make([]int, len(ids), len(ids)+maxLength)
	copy(result, ids)

	for range maxLength {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logits, err := model.Logits(ctx, prefix, result)

		if err != nil {
			return nil, err
		}

		next, err := Argmax(logits)

		if err != nil {
			return nil, err
		}

		if next == eos {
			break
		}

		result = append(result, next)
	}

	return result, nil
}

// Argmax returns the index of the highest score; ties resolve to the lowest index.
func Argmax(logits []float32) (int, error) {
	if len(logits) == 0 {
		return 0, ErrEmptyLogits
	}

	best := 0

	for i, v := range logits[1:] {
		if v > logits[best] {
			best = i + 1
		}
	}

	return best, nil
}
