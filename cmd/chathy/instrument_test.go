package main

import (
	"context"
	"errors"
	"testing"

	"github.com/chathy-app/chathy/internal/metrics"
	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	completionFunc func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
}

func (s *stubProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	return s.completionFunc(ctx, req)
}

func (s *stubProvider) HealthCheck(ctx context.Context) (*llm.HealthStatus, error) {
	return &llm.HealthStatus{Healthy: true}, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestInstrumentedProvider_Delegates(t *testing.T) {
	collector := metrics.NewCollector("cmdtest_provider", zap.NewNop())

	t.Run("success passes response through", func(t *testing.T) {
		inner := &stubProvider{
			completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
				return &llm.ChatResponse{
					Model: "mistral-small-latest",
					Choices: []llm.ChatChoice{
						{Message: types.NewAssistantMessage("oi")},
					},
					Usage: llm.ChatUsage{PromptTokens: 10, CompletionTokens: 5},
				}, nil
			},
		}
		p := instrumentProvider(inner, collector, "mistral-small-latest")

		resp, err := p.Completion(context.Background(), &llm.ChatRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Choices, 1)
		assert.Equal(t, "stub", p.Name())
	})

	t.Run("error passes through", func(t *testing.T) {
		inner := &stubProvider{
			completionFunc: func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
				return nil, errors.New("upstream down")
			},
		}
		p := instrumentProvider(inner, collector, "mistral-small-latest")

		_, err := p.Completion(context.Background(), &llm.ChatRequest{})
		require.Error(t, err)
	})
}

func TestInstrumentedLog_Delegates(t *testing.T) {
	collector := metrics.NewCollector("cmdtest_log", zap.NewNop())
	log := instrumentLog(persistence.NewMemoryConversationLog(), collector)
	ctx := context.Background()

	msg := types.GroupMessage{ID: "m1", GroupID: "g1", Content: "oi", Sender: types.SenderUser}
	require.NoError(t, log.Append(ctx, msg))
	require.NoError(t, log.AppendBatch(ctx, []types.GroupMessage{
		{ID: "m2", GroupID: "g1", Content: "olá", Sender: types.SenderAgent},
	}))

	history, err := log.History(ctx, "g1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	require.NoError(t, log.Trim(ctx, "g1", 1))
	history, err = log.History(ctx, "g1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "m2", history[0].ID)

	require.NoError(t, log.Clear(ctx, "g1"))
	history, err = log.History(ctx, "g1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, log.Ping(ctx))
	require.NoError(t, log.Close())
}
