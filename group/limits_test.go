package group

import (
	"net/http"
	"strings"
	"testing"

	"github.com/chathy-app/chathy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	assert.Equal(t, 800, l.MaxMessageLength)
	assert.Equal(t, 800, l.MaxAgentMessageLength)
	assert.Equal(t, 100, l.MaxHistoryLength)
}

func TestValidateMessageLength(t *testing.T) {
	l := Limits{MaxMessageLength: 10}

	assert.NoError(t, l.ValidateMessageLength("curta"))
	assert.NoError(t, l.ValidateMessageLength(strings.Repeat("x", 10)))

	err := l.ValidateMessageLength(strings.Repeat("x", 11))
	require.Error(t, err)
	assert.Equal(t, types.ErrMessageTooLong, types.GetErrorCode(err))

	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, http.StatusBadRequest, typed.HTTPStatus)
}

func TestValidateMessageLength_CountsRunesNotBytes(t *testing.T) {
	l := Limits{MaxMessageLength: 5}
	// 5 runes, 10 bytes
	assert.NoError(t, l.ValidateMessageLength("ação!"))
}

func TestSplitAgentMessage(t *testing.T) {
	l := Limits{MaxAgentMessageLength: 20}

	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, []string{"oi pessoal"}, l.SplitAgentMessage("oi pessoal"))
	})

	t.Run("exactly at limit unchanged", func(t *testing.T) {
		text := strings.Repeat("a", 20)
		assert.Equal(t, []string{text}, l.SplitAgentMessage(text))
	})

	t.Run("splits at last space before half", func(t *testing.T) {
		// half = 10; last space at or before index 10 is after "um dois"
		parts := l.SplitAgentMessage("um dois tres quatro cinco seis")
		require.Len(t, parts, 2)
		assert.Equal(t, "um dois", parts[0])
		assert.Equal(t, "tres quatro cinco seis", parts[1])
	})

	t.Run("no whitespace cuts at half", func(t *testing.T) {
		text := strings.Repeat("a", 30)
		parts := l.SplitAgentMessage(text)
		require.Len(t, parts, 2)
		assert.Equal(t, strings.Repeat("a", 10), parts[0])
		assert.Equal(t, strings.Repeat("a", 20), parts[1])
	})

	t.Run("second part delivered verbatim even when oversized", func(t *testing.T) {
		text := "ab " + strings.Repeat("c", 100)
		parts := l.SplitAgentMessage(text)
		require.Len(t, parts, 2)
		assert.Equal(t, "ab", parts[0])
		assert.Equal(t, strings.Repeat("c", 100), parts[1])
	})
}

func TestTrimHistory(t *testing.T) {
	l := Limits{MaxHistoryLength: 3}
	msgs := []types.GroupMessage{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"},
	}

	trimmed := l.TrimHistory(msgs)
	require.Len(t, trimmed, 3)
	assert.Equal(t, "3", trimmed[0].ID)
	assert.Equal(t, "5", trimmed[2].ID)

	within := msgs[:2]
	assert.Equal(t, within, l.TrimHistory(within))
}
