package decoder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedModel emits the next token of script on each call.
type scriptedModel struct {
	script []int
	vocab  int

	calls int
	seen  [][]int
}

func (m *scriptedModel) Logits(ctx context.Context, prefix Prefix, ids []int) ([]float32, error) {
	m.seen = append(m.seen, append([]int(nil), ids...))

	logits := make([]float32, m.vocab)

	if m.calls < len(m.script) {
		logits[m.script[m.calls]] = 1
	}

	m.calls++

	return logits, nil
}

func TestGreedyStopsAtEOS(t *testing.T) {
	model := &scriptedModel{script: []int{4, 5, 9, 6}, vocab: 10}

	ids, err := Greedy(context.Background(), model, nil, []int{1, 2}, 9, nil)
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 4, 5}, ids)
	require.Equal(t, 3, model.calls)

	require.Equal(t, []int{1, 2}, model.seen[0])
	require.Equal(t, []int{1, 2, 4}, model.seen[1])
}

func TestGreedyMaxLength(t *testing.T) {
	model := &scriptedModel{script: []int{3, 3, 3, 3, 3, 3}, vocab: 5}

	ids, err := Greedy(context.Background(), model, nil, []int{0}, 4, &Options{MaxLength: 4})
	require.NoError(t, err)

	require.Equal(t, []int{0, 3, 3, 3, 3}, ids)
	require.Equal(t, 4, model.calls)
}

func TestGreedyDefaultMaxLength(t *testing.T) {
	// all-zero logits always pick token 0, never eos
	model := &scriptedModel{vocab: 3}

	ids, err := Greedy(context.Background(), model, nil, nil, 2, nil)
	require.NoError(t, err)

	require.Len(t, ids, DefaultMaxLength)
	require.Equal(t, DefaultMaxLength, model.calls)
}

func TestGreedyDoesNotMutateInput(t *testing.T) {
	model := &scriptedModel{script: []int{1}, vocab: 3}

	prompt := make([]int, 1, 10)
	prompt[0] = 2

	_, err := Greedy(context.Background(), model, nil, prompt, 0, &Options{MaxLength: 1})
	require.NoError(t, err)

	require.Equal(t, []int{2}, prompt)
}

func TestGreedyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &scriptedModel{vocab: 3}

	_, err := Greedy(ctx, model, nil, nil, 2, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, model.calls)
}

type failingModel struct{}

func (failingModel) Logits(ctx context.Context, prefix Prefix, ids []int) ([]float32, error) {
	return nil, errors.New("boom")
}

func TestGreedyModelError(t *testing.T) {
	_, err := Greedy(context.Background(), failingModel{}, nil, nil, 0, nil)
	require.EqualError(t, err, "boom")
}

func TestArgmax(t *testing.T) {
	idx, err := Argmax([]float32{0.1, 0.7, 0.7, -1})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	idx, err = Argmax([]float32{-3, -2, -5})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	_, err = Argmax(nil)
	require.ErrorIs(t, err, ErrEmptyLogits)
}
