package group

import (
	"context"
	"time"

	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/types"
)

// mockProvider implements llm.Provider with swappable callbacks.
type mockProvider struct {
	completionFunc func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
	calls          []*llm.ChatRequest
}

func (m *mockProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	m.calls = append(m.calls, req)
	if m.completionFunc != nil {
		return m.completionFunc(ctx, req)
	}
	return textResponse("ok"), nil
}

func (m *mockProvider) HealthCheck(ctx context.Context) (*llm.HealthStatus, error) {
	return &llm.HealthStatus{Healthy: true}, nil
}

func (m *mockProvider) Name() string { return "mock" }

func textResponse(text string) *llm.ChatResponse {
	return &llm.ChatResponse{
		Model: "mock-model",
		Choices: []llm.ChatChoice{
			{Message: types.NewAssistantMessage(text), FinishReason: "stop"},
		},
		CreatedAt: time.Now(),
	}
}

func testRoster() []types.Agent {
	return []types.Agent{
		{ID: "marketing-digital", Name: "Ana Silva", Title: "Especialista em Marketing Digital", Specialty: "Marketing Digital", IsActive: true},
		{ID: "gestor-trafego", Name: "Carlos Mendes", Title: "Gestor de Tráfego ADS", Specialty: "Gestão de Tráfego Pago", IsActive: true},
		{ID: "social-media", Name: "Beatriz Costa", Title: "Social Media Specialist", Specialty: "Gestão de Redes Sociais", IsActive: true},
	}
}

func testGroup() types.Group {
	return types.Group{
		ID:        "marketing-team",
		Name:      "Equipe de Marketing",
		Members:   []string{"marketing-digital", "gestor-trafego", "social-media"},
		CreatedBy: types.CreatedBySystem,
	}
}
