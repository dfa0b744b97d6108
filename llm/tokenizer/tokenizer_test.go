package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatorTokenizer_CountTokens(t *testing.T) {
	est := NewEstimatorTokenizer("unknown-model", 0)

	count, err := est.CountTokens("")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = est.CountTokens("abcd")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = est.CountTokens("a")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "non-empty text is at least one token")

	assert.Equal(t, 4096, est.MaxTokens(), "zero maxTokens falls back to default")
	assert.Equal(t, "estimator:unknown-model", est.Name())
}

func TestNewTiktokenTokenizer_UnknownModel(t *testing.T) {
	_, err := NewTiktokenTokenizer("not-a-model", 0)
	assert.Error(t, err)
}

func TestForModel(t *testing.T) {
	tok := ForModel("mistral-small-latest", 32768)
	assert.Equal(t, "tiktoken:mistral-small-latest", tok.Name())

	tok = ForModel("totally-unknown", 1000)
	assert.Equal(t, "estimator:totally-unknown", tok.Name())
	assert.Equal(t, 1000, tok.MaxTokens())
}
