package group

import (
	"context"
	"errors"
	"testing"

	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSelector(provider *mockProvider) *Selector {
	return NewSelector(provider, NewComposer(nil, zap.NewNop()), zap.NewNop())
}

func TestSelectResponders_MentionOverride(t *testing.T) {
	provider := &mockProvider{
		completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
			t.Fatal("arbiter must not be invoked when mentions exist")
			return nil, nil
		},
	}
	s := newTestSelector(provider)
	roster := testRoster()

	responders, outcome := s.SelectResponders(context.Background(), "@Carlos e @Beatriz, o que acham?", nil, roster, nil)

	require.Len(t, responders, 2)
	// roster order, not mention order
	assert.Equal(t, "gestor-trafego", responders[0].ID)
	assert.Equal(t, "social-media", responders[1].ID)
	assert.Equal(t, OutcomeMention, outcome)
	assert.Empty(t, provider.calls)
}

func TestSelectResponders_Arbiter(t *testing.T) {
	provider := &mockProvider{
		completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
			return textResponse("social-media"), nil
		},
	}
	s := newTestSelector(provider)

	responders, outcome := s.SelectResponders(context.Background(), "qual o melhor horário para postar?", nil, testRoster(), nil)

	require.Len(t, responders, 1)
	assert.Equal(t, "social-media", responders[0].ID)
	assert.Equal(t, OutcomeArbiter, outcome)

	require.Len(t, provider.calls, 1)
	req := provider.calls[0]
	assert.Equal(t, arbiterMaxTokens, req.MaxTokens)
	assert.InDelta(t, arbiterTemperature, req.Temperature, 0.001)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, types.RoleSystem, req.Messages[0].Role)
}

func TestSelectResponders_ArbiterAnswerNormalization(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"plain id", "gestor-trafego", "gestor-trafego"},
		{"surrounding whitespace", "  gestor-trafego\n", "gestor-trafego"},
		{"quoted", `"gestor-trafego"`, "gestor-trafego"},
		{"trailing period", "gestor-trafego.", "gestor-trafego"},
		{"uppercase", "GESTOR-TRAFEGO", "gestor-trafego"},
		{"id followed by chatter", "gestor-trafego porque a pergunta é sobre anúncios", "gestor-trafego"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{
				completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
					return textResponse(tt.answer), nil
				},
			}
			s := newTestSelector(provider)

			responders, outcome := s.SelectResponders(context.Background(), "oi", nil, testRoster(), nil)
			require.Len(t, responders, 1)
			assert.Equal(t, tt.want, responders[0].ID)
			assert.Equal(t, OutcomeArbiter, outcome)
		})
	}
}

func TestSelectResponders_FallbackOnArbiterError(t *testing.T) {
	provider := &mockProvider{
		completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
			return nil, errors.New("upstream down")
		},
	}
	s := newTestSelector(provider)
	roster := testRoster()

	// never empty for a non-empty roster, regardless of how often it fails
	for i := 0; i < 20; i++ {
		responders, outcome := s.SelectResponders(context.Background(), "oi", nil, roster, nil)
		require.Len(t, responders, 1)
		assert.Equal(t, OutcomeFallback, outcome)
	}
}

func TestSelectResponders_FallbackOnUnknownAnswer(t *testing.T) {
	provider := &mockProvider{
		completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
			return textResponse("agente-inexistente"), nil
		},
	}
	s := newTestSelector(provider)
	s.intn = func(n int) int { return 1 }

	responders, outcome := s.SelectResponders(context.Background(), "oi", nil, testRoster(), nil)
	require.Len(t, responders, 1)
	assert.Equal(t, "gestor-trafego", responders[0].ID)
	assert.Equal(t, OutcomeFallback, outcome)
}

func TestSelectResponders_EmptyRoster(t *testing.T) {
	s := newTestSelector(&mockProvider{})

	responders, _ := s.SelectResponders(context.Background(), "oi", nil, nil, nil)
	assert.Empty(t, responders)
}

func TestNormalizeArbiterID(t *testing.T) {
	assert.Equal(t, "financeiro", normalizeArbiterID(" 'financeiro'.\n"))
	assert.Equal(t, "financeiro", normalizeArbiterID("financeiro deve responder"))
	assert.Equal(t, "", normalizeArbiterID("   "))
}
