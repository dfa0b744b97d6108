// Package providers holds configuration shared by concrete LLM providers.
package providers

import (
	"time"

	"github.com/chathy-app/chathy/llm"
)

// MistralConfig configures the Mistral provider.
type MistralConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Model   string        `json:"model,omitempty" yaml:"model,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ChooseModel selects the model to use based on priority:
// request model, then config model, then the provider default.
func ChooseModel(req *llm.ChatRequest, configModel string, defaultModel string) string {
	if req != nil && req.Model != "" {
		return req.Model
	}
	if configModel != "" {
		return configModel
	}
	return defaultModel
}
