package group

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chathy-app/chathy/types"
)

// Limits bounds message and history sizes for one group conversation.
// Lengths are in characters (runes), not bytes.
type Limits struct {
	// MaxMessageLength caps inbound user messages. Longer input is rejected.
	MaxMessageLength int `json:"max_message_length" yaml:"max_message_length"`

	// MaxAgentMessageLength caps a single delivered agent reply. Longer
	// replies are split into at most two parts.
	MaxAgentMessageLength int `json:"max_agent_message_length" yaml:"max_agent_message_length"`

	// MaxHistoryLength caps the retained conversation log. Oldest entries
	// are evicted first.
	MaxHistoryLength int `json:"max_history_length" yaml:"max_history_length"`
}

// DefaultLimits returns the default conversation limits.
func DefaultLimits() Limits {
	return Limits{
		MaxMessageLength:      800,
		MaxAgentMessageLength: 800,
		MaxHistoryLength:      100,
	}
}

// ValidateMessageLength rejects user input exceeding MaxMessageLength.
// This is the only hard failure in the turn pipeline; everything after it
// degrades gracefully.
func (l Limits) ValidateMessageLength(text string) error {
	if utf8.RuneCountInString(text) > l.MaxMessageLength {
		return types.NewError(types.ErrMessageTooLong,
			fmt.Sprintf("mensagem muito longa, maximo permitido: %d caracteres", l.MaxMessageLength)).
			WithHTTPStatus(http.StatusBadRequest)
	}
	return nil
}

// SplitAgentMessage splits an oversized agent reply into at most two ordered
// parts. The split point is the last whitespace at or before half of
// MaxAgentMessageLength so words stay whole; with no whitespace in range the
// text is cut exactly at the half boundary. Both parts are trimmed, and the
// remainder is delivered verbatim as the second part even when it still
// exceeds the limit.
func (l Limits) SplitAgentMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= l.MaxAgentMessageLength {
		return []string{text}
	}

	half := l.MaxAgentMessageLength / 2

	splitIndex := half
	for splitIndex > 0 && !unicode.IsSpace(runes[splitIndex]) {
		splitIndex--
	}
	if splitIndex == 0 {
		splitIndex = half
	}

	first := strings.TrimSpace(string(runes[:splitIndex]))
	second := strings.TrimSpace(string(runes[splitIndex:]))
	if second == "" {
		return []string{first}
	}
	return []string{first, second}
}

// TrimHistory bounds a chronological message list to MaxHistoryLength,
// keeping the most recent suffix. Lists within the bound are returned
// unchanged.
func (l Limits) TrimHistory(messages []types.GroupMessage) []types.GroupMessage {
	if len(messages) <= l.MaxHistoryLength {
		return messages
	}
	return messages[len(messages)-l.MaxHistoryLength:]
}
