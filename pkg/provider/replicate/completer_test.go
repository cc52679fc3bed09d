package replicate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertOutput(t *testing.T) {
	tests := []struct {
		name   string
		output PredictionOutput
		want   string
	}{
		{"string", "a cat", "a cat"},
		{"tokens", []any{"a", " cat", " sleeping"}, "a cat sleeping"},
		{"strings", []string{"a", " dog"}, "a dog"},
		{"caption", map[string]any{"caption": "a bird"}, "a bird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertOutput(tt.output)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConvertOutputInvalid(t *testing.T) {
	_, err := convertOutput(42)
	require.Error(t, err)

	_, err = convertOutput([]any{"a", 1})
	require.Error(t, err)
}
