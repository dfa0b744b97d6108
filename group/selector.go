package group

import (
	"context"
	"math/rand"
	"strings"

	"github.com/chathy-app/chathy/llm"
	"github.com/chathy-app/chathy/types"
	"go.uber.org/zap"
)

const (
	arbiterMaxTokens   = 50
	arbiterTemperature = 0.3
)

// SelectionOutcome records how responders were chosen, for metrics.
type SelectionOutcome string

const (
	OutcomeMention  SelectionOutcome = "mention"
	OutcomeArbiter  SelectionOutcome = "arbiter"
	OutcomeFallback SelectionOutcome = "fallback"
)

// Selector decides which agents respond to an inbound message. Explicitly
// mentioned agents always respond; otherwise exactly one agent is chosen by
// a delegated arbitration call, with a uniform random member as fallback.
// A call never yields an empty list for a non-empty roster.
type Selector struct {
	provider llm.Provider
	composer *Composer
	logger   *zap.Logger

	// intn is swappable for deterministic tests.
	intn func(n int) int
}

// NewSelector creates a responder selector backed by the given provider as
// arbiter.
func NewSelector(provider llm.Provider, composer *Composer, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		provider: provider,
		composer: composer,
		logger:   logger.With(zap.String("component", "responder_selector")),
		intn:     rand.Intn,
	}
}

// SelectResponders returns the agents that must respond to message, in
// response emission order, together with how the decision was made.
// members must already be filtered to the group's active roster.
func (s *Selector) SelectResponders(ctx context.Context, message string, history []types.GroupMessage, members []types.Agent, user *types.UserProfile) ([]types.Agent, SelectionOutcome) {
	if len(members) == 0 {
		return nil, OutcomeFallback
	}

	if mentioned := ExtractMentions(message, members); len(mentioned) > 0 {
		// Mentioned agents respond unconditionally; the arbiter is not consulted.
		set := make(map[string]bool, len(mentioned))
		for _, id := range mentioned {
			set[id] = true
		}
		responders := make([]types.Agent, 0, len(mentioned))
		for _, m := range members {
			if set[m.ID] {
				responders = append(responders, m)
			}
		}
		return responders, OutcomeMention
	}

	agent, ok := s.arbitrate(ctx, message, history, members, user)
	if ok {
		return []types.Agent{agent}, OutcomeArbiter
	}

	fallback := members[s.intn(len(members))]
	s.logger.Info("arbitration fell back to random member",
		zap.String("agent_id", fallback.ID),
	)
	return []types.Agent{fallback}, OutcomeFallback
}

// arbitrate asks the completion provider to name exactly one roster id.
// Any provider error or unparseable answer reports failure; the caller
// handles the fallback.
func (s *Selector) arbitrate(ctx context.Context, message string, history []types.GroupMessage, members []types.Agent, user *types.UserProfile) (types.Agent, bool) {
	prompt := s.composer.BuildArbiterPrompt(members, history, user, message)

	resp, err := s.provider.Completion(ctx, &llm.ChatRequest{
		Messages:    []types.Message{types.NewSystemMessage(prompt)},
		MaxTokens:   arbiterMaxTokens,
		Temperature: arbiterTemperature,
	})
	if err != nil {
		s.logger.Warn("arbitration call failed", zap.Error(err))
		return types.Agent{}, false
	}

	text, err := llm.FirstChoiceText(resp)
	if err != nil {
		s.logger.Warn("arbitration returned no choices", zap.Error(err))
		return types.Agent{}, false
	}

	id := normalizeArbiterID(text)
	for _, m := range members {
		if strings.EqualFold(m.ID, id) {
			return m, true
		}
	}

	s.logger.Warn("arbiter named unknown agent", zap.String("answer", id))
	return types.Agent{}, false
}

// normalizeArbiterID strips whitespace and quoting the model tends to wrap
// around the id. The roster match itself stays a plain string comparison.
func normalizeArbiterID(text string) string {
	id := strings.TrimSpace(text)
	if idx := strings.IndexAny(id, " \n\t"); idx >= 0 {
		id = id[:idx]
	}
	id = strings.TrimSuffix(id, ".")
	return strings.Trim(id, "\"'`")
}
