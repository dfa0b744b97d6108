package tokenizer

import "unicode/utf8"

// EstimatorTokenizer is a character-count-based token estimator.
// Roughly four ASCII characters per token; accurate enough for budget
// logging when no exact encoding is available.
type EstimatorTokenizer struct {
	model         string
	maxTokens     int
	charsPerToken float64
}

// NewEstimatorTokenizer creates a generic estimator.
func NewEstimatorTokenizer(model string, maxTokens int) *EstimatorTokenizer {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &EstimatorTokenizer{
		model:         model,
		maxTokens:     maxTokens,
		charsPerToken: 4.0,
	}
}

func (e *EstimatorTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	estimated := int(float64(utf8.RuneCountInString(text)) / e.charsPerToken)
	if estimated == 0 {
		estimated = 1
	}
	return estimated, nil
}

func (e *EstimatorTokenizer) MaxTokens() int { return e.maxTokens }

func (e *EstimatorTokenizer) Name() string { return "estimator:" + e.model }
