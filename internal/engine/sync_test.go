package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncInterval(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"anthropic/claude-sonnet-4", 15},
		{"x-ai/grok-4", 15},
		{"moonshotai/kimi-k2", 15},
		{"meta-llama/llama-4-scout", 15},
		{"meta-llama/llama-3.3-70b-instruct", 15},
		{"meta-llama/llama-3.1-405b-instruct", 15},
		{"openai/gpt-4o", 15},
		{"openai/gpt-oss-120b", 5},
		{"mistralai/mistral-small", 5},
		{"", 5},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			require.Equal(t, tt.want, SyncInterval(tt.model))
		})
	}
}

func TestFullSync(t *testing.T) {
	// Genesis and free-form lives always carry full context.
	require.True(t, FullSync("openai/gpt-oss-120b", 3, false, true))
	require.True(t, FullSync("openai/gpt-oss-120b", 3, true, false))

	// Narrative lives sync on interval multiples only.
	require.True(t, FullSync("openai/gpt-oss-120b", 5, false, false))
	require.True(t, FullSync("openai/gpt-oss-120b", 10, false, false))
	require.False(t, FullSync("openai/gpt-oss-120b", 3, false, false))
	require.False(t, FullSync("openai/gpt-oss-120b", 7, false, false))

	// Large-context families stretch the interval.
	require.False(t, FullSync("anthropic/claude-sonnet-4", 5, false, false))
	require.True(t, FullSync("anthropic/claude-sonnet-4", 15, false, false))
	require.True(t, FullSync("anthropic/claude-sonnet-4", 30, false, false))
}
