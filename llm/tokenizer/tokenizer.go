// Package tokenizer provides token counting used for prompt budget checks.
// Tiktoken gives exact counts for known encodings; an estimator covers
// everything else.
package tokenizer

// Tokenizer is the unified token counting interface.
type Tokenizer interface {
	// CountTokens returns the token count for the given text.
	CountTokens(text string) (int, error)

	// MaxTokens returns the model's maximum context length.
	MaxTokens() int

	// Name returns the tokenizer's name.
	Name() string
}

// ForModel returns a tokenizer for the given model name. Models without a
// known tiktoken encoding fall back to the character estimator.
func ForModel(model string, maxTokens int) Tokenizer {
	if t, err := NewTiktokenTokenizer(model, maxTokens); err == nil {
		return t
	}
	return NewEstimatorTokenizer(model, maxTokens)
}
