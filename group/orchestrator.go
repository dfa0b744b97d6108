package group

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	replyMaxTokens   = 500
	replyTemperature = 0.7

	// apologyNotice substitutes a responder's reply when its completion
	// call fails. The rest of the batch continues.
	apologyNotice = "Desculpe, houve um problema técnico. Vamos tentar novamente?"

	datetimePrefix = "[Data/Hora atual:"
)

// TurnMetrics receives orchestration measurements. Implemented by
// internal/metrics.Collector; nil disables collection.
type TurnMetrics interface {
	ObserveTurn(groupID string, responders int, d time.Duration)
	RecordSelection(outcome string)
	RecordCompletionFailure(stage string)
}

// TurnResult is the outcome of one processed group turn.
type TurnResult struct {
	// UserMessage is the inbound message as appended to the log, with
	// mentions tagged.
	UserMessage types.GroupMessage

	// Replies are the assistant-authored messages in emission order:
	// chunks of one responder stay adjacent, responders keep selection
	// order, and a failed responder contributes a single system notice.
	Replies []types.GroupMessage

	// History is the windowed view of the log after appending this turn.
	History []types.GroupMessage

	// Outcome records how responders were selected.
	Outcome SelectionOutcome
}

// Orchestrator coordinates one group conversation turn end to end.
// Every call operates on a freshly supplied history snapshot; no state is
// shared across turns except the injected conversation log.
type Orchestrator struct {
	provider llm.Provider
	composer *Composer
	selector *Selector
	limits   Limits
	log      persistence.ConversationLog
	metrics  TurnMetrics
	tracer   trace.Tracer
	logger   *zap.Logger

	// now and newID are swappable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewOrchestrator creates a group orchestrator. The conversation log and
// metrics are optional; a nil log keeps the turn purely in-memory.
func NewOrchestrator(provider llm.Provider, composer *Composer, selector *Selector, limits Limits, log persistence.ConversationLog, metrics TurnMetrics, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		provider: provider,
		composer: composer,
		selector: selector,
		limits:   limits,
		log:      log,
		metrics:  metrics,
		tracer:   otel.Tracer("chathy/group"),
		logger:   logger.With(zap.String("component", "group_orchestrator")),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// HandleGroupMessage processes one inbound user message for a group.
//
// The only hard failure is input rejection by the length policy. An empty
// active roster yields a result with no replies. Arbitration and individual
// completion failures degrade to a random responder and an apology notice
// respectively, so one misbehaving dependency never blocks the whole group.
func (o *Orchestrator) HandleGroupMessage(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*TurnResult, error) {
	if err := o.limits.ValidateMessageLength(rawText); err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "group.turn",
		trace.WithAttributes(attribute.String("group.id", grp.ID)))
	defer span.End()
	start := o.now()

	members := types.FilterActive(allAgents, grp.Members)

	userMsg := types.NewUserGroupMessage(o.newID(), grp.ID, rawText, user)
	userMsg.Timestamp = start
	userMsg.Mentions = ExtractMentions(rawText, members)
	history = append(history, userMsg)

	result := &TurnResult{UserMessage: userMsg}

	if len(members) == 0 {
		o.logger.Info("group has no active members, no replies produced",
			zap.String("group_id", grp.ID),
		)
		result.History = o.finishTurn(ctx, grp.ID, history, userMsg, nil)
		return result, nil
	}

	responders, outcome := o.selector.SelectResponders(ctx, rawText, history, members, user)
	result.Outcome = outcome
	if o.metrics != nil {
		o.metrics.RecordSelection(string(outcome))
	}
	span.SetAttributes(
		attribute.Int("group.responders", len(responders)),
		attribute.String("group.selection", string(outcome)),
	)

	contextual := o.withDateTime(rawText)
	lastStamp := start

	for _, responder := range responders {
		replies := o.generateReply(ctx, responder, grp, members, history, user, contextual, &lastStamp)
		result.Replies = append(result.Replies, replies...)
		history = append(history, replies...)
	}

	result.History = o.finishTurn(ctx, grp.ID, history, userMsg, result.Replies)

	if o.metrics != nil {
		o.metrics.ObserveTurn(grp.ID, len(responders), o.now().Sub(start))
	}
	o.logger.Info("group turn completed",
		zap.String("group_id", grp.ID),
		zap.Int("responders", len(responders)),
		zap.Int("replies", len(result.Replies)),
		zap.String("selection", string(outcome)),
	)
	return result, nil
}

// generateReply runs one responder: prompt, completion, splitting. A failed
// completion produces a single system notice instead of aborting the batch.
func (o *Orchestrator) generateReply(ctx context.Context, responder types.Agent, grp types.Group, members []types.Agent, history []types.GroupMessage, user *types.UserProfile, contextual string, lastStamp *time.Time) []types.GroupMessage {
	others := make([]types.Agent, 0, len(members)-1)
	for _, m := range members {
		if m.ID != responder.ID {
			others = append(others, m)
		}
	}

	prompt := o.composer.BuildSystemPrompt(responder, grp, others, history, user, contextual)

	resp, err := o.provider.Completion(ctx, &llm.ChatRequest{
		Messages: []types.Message{
			types.NewSystemMessage(prompt),
			types.NewUserMessage(contextual),
		},
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err == nil {
		var text string
		if text, err = llm.FirstChoiceText(resp); err == nil {
			parts := o.limits.SplitAgentMessage(text)
			replies := make([]types.GroupMessage, 0, len(parts))
			for _, part := range parts {
				msg := types.NewAgentGroupMessage(o.newID(), grp.ID, part, responder)
				msg.Timestamp = o.stamp(lastStamp)
				replies = append(replies, msg)
			}
			return replies
		}
	}

	o.logger.Warn("responder completion failed, substituting notice",
		zap.String("agent_id", responder.ID),
		zap.Error(err),
	)
	if o.metrics != nil {
		o.metrics.RecordCompletionFailure("reply")
	}
	notice := types.NewSystemGroupMessage(o.newID(), grp.ID, apologyNotice)
	notice.Timestamp = o.stamp(lastStamp)
	return []types.GroupMessage{notice}
}

// finishTurn persists the turn's new entries, applies the history window,
// and returns the trimmed view. Persistence failures are logged, never
// propagated: the caller still gets a consistent in-memory result.
func (o *Orchestrator) finishTurn(ctx context.Context, groupID string, history []types.GroupMessage, userMsg types.GroupMessage, replies []types.GroupMessage) []types.GroupMessage {
	trimmed := o.limits.TrimHistory(history)

	if o.log == nil {
		return trimmed
	}
	if err := o.log.Append(ctx, userMsg); err != nil {
		o.logger.Warn("failed to persist user message", zap.Error(err))
	}
	if len(replies) > 0 {
		if err := o.log.AppendBatch(ctx, replies); err != nil {
			o.logger.Warn("failed to persist replies", zap.Error(err))
		}
	}
	if err := o.log.Trim(ctx, groupID, o.limits.MaxHistoryLength); err != nil {
		o.logger.Warn("failed to trim conversation log", zap.Error(err))
	}
	return trimmed
}

// stamp returns a timestamp that never decreases within one turn, so chunk
// and responder order survives sorting by time.
func (o *Orchestrator) stamp(last *time.Time) time.Time {
	t := o.now()
	if t.Before(*last) {
		t = *last
	}
	*last = t
	return t
}

// withDateTime prepends the current date/time context unless the text
// already carries one.
func (o *Orchestrator) withDateTime(text string) string {
	if strings.Contains(text, datetimePrefix) {
		return text
	}
	return fmt.Sprintf("%s %s] %s", datetimePrefix, o.now().Format("02/01/2006 15:04 MST"), text)
}
