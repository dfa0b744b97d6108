package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenTokenizer wraps tiktoken for models with a known encoding.
// Mistral models tokenize close enough to cl100k_base for budget purposes.
type TiktokenTokenizer struct {
	model     string
	encoding  string
	maxTokens int
	enc       *tiktoken.Tiktoken
	once      sync.Once
	initErr   error
}

var modelEncodings = map[string]string{
	"mistral-small-latest":  "cl100k_base",
	"mistral-medium-latest": "cl100k_base",
	"mistral-large-latest":  "cl100k_base",
	"open-mistral-7b":       "cl100k_base",
}

// NewTiktokenTokenizer creates a tiktoken-backed tokenizer for a model.
// Returns an error for models without a registered encoding.
func NewTiktokenTokenizer(model string, maxTokens int) (*TiktokenTokenizer, error) {
	encoding, ok := modelEncodings[model]
	if !ok {
		return nil, fmt.Errorf("no tiktoken encoding registered for model %q", model)
	}
	if maxTokens <= 0 {
		maxTokens = 32768
	}
	return &TiktokenTokenizer{
		model:     model,
		encoding:  encoding,
		maxTokens: maxTokens,
	}, nil
}

// init loads the encoding lazily; tiktoken pulls the BPE ranks on first use.
func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		t.enc, t.initErr = tiktoken.GetEncoding(t.encoding)
	})
	return t.initErr
}

func (t *TiktokenTokenizer) CountTokens(text string) (int, error) {
	if err := t.init(); err != nil {
		return 0, fmt.Errorf("load encoding %s: %w", t.encoding, err)
	}
	if text == "" {
		return 0, nil
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *TiktokenTokenizer) MaxTokens() int { return t.maxTokens }

func (t *TiktokenTokenizer) Name() string { return "tiktoken:" + t.model }
