package main

import (
	"context"
	"time"

	"github.com/chathy-app/chathy/internal/metrics"
	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/types"
)

// instrumentedProvider wraps an llm.Provider and records per-call metrics.
type instrumentedProvider struct {
	inner     llm.Provider
	collector *metrics.Collector
	model     string
}

func instrumentProvider(inner llm.Provider, collector *metrics.Collector, model string) *instrumentedProvider {
	return &instrumentedProvider{
		inner:     inner,
		collector: collector,
		model:     model,
	}
}

func (p *instrumentedProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	start := time.Now()
	resp, err := p.inner.Completion(ctx, req)
	duration := time.Since(start)

	model := p.model
	if req != nil && req.Model != "" {
		model = req.Model
	}
	status := "ok"
	prompt, completion := 0, 0
	if err != nil {
		status = "error"
	} else if resp != nil {
		prompt = resp.Usage.PromptTokens
		completion = resp.Usage.CompletionTokens
	}
	p.collector.RecordLLMRequest(p.inner.Name(), model, status, duration, prompt, completion)
	return resp, err
}

func (p *instrumentedProvider) HealthCheck(ctx context.Context) (*llm.HealthStatus, error) {
	return p.inner.HealthCheck(ctx)
}

func (p *instrumentedProvider) Name() string {
	return p.inner.Name()
}

// instrumentedLog wraps a ConversationLog and records per-operation latency.
type instrumentedLog struct {
	inner     persistence.ConversationLog
	collector *metrics.Collector
}

func instrumentLog(inner persistence.ConversationLog, collector *metrics.Collector) *instrumentedLog {
	return &instrumentedLog{inner: inner, collector: collector}
}

func (l *instrumentedLog) observe(op string, start time.Time) {
	l.collector.RecordStoreOperation(op, time.Since(start))
}

func (l *instrumentedLog) Append(ctx context.Context, msg types.GroupMessage) error {
	defer l.observe("append", time.Now())
	return l.inner.Append(ctx, msg)
}

func (l *instrumentedLog) AppendBatch(ctx context.Context, msgs []types.GroupMessage) error {
	defer l.observe("append_batch", time.Now())
	return l.inner.AppendBatch(ctx, msgs)
}

func (l *instrumentedLog) History(ctx context.Context, groupID string, limit int) ([]types.GroupMessage, error) {
	defer l.observe("history", time.Now())
	return l.inner.History(ctx, groupID, limit)
}

func (l *instrumentedLog) Trim(ctx context.Context, groupID string, max int) error {
	defer l.observe("trim", time.Now())
	return l.inner.Trim(ctx, groupID, max)
}

func (l *instrumentedLog) Clear(ctx context.Context, groupID string) error {
	defer l.observe("clear", time.Now())
	return l.inner.Clear(ctx, groupID)
}

func (l *instrumentedLog) Ping(ctx context.Context) error {
	return l.inner.Ping(ctx)
}

func (l *instrumentedLog) Close() error {
	return l.inner.Close()
}
