package llm

import (
	"testing"

	"github.com/chathy-app/chathy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstChoice(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		_, err := FirstChoice(nil)
		assert.Error(t, err)
	})

	t.Run("empty choices", func(t *testing.T) {
		_, err := FirstChoice(&ChatResponse{})
		assert.Error(t, err)
	})

	t.Run("returns first", func(t *testing.T) {
		resp := &ChatResponse{
			Choices: []ChatChoice{
				{Index: 0, Message: types.NewAssistantMessage("primeiro")},
				{Index: 1, Message: types.NewAssistantMessage("segundo")},
			},
		}
		choice, err := FirstChoice(resp)
		require.NoError(t, err)
		assert.Equal(t, "primeiro", choice.Message.Content)
	})
}

func TestFirstChoiceText(t *testing.T) {
	resp := &ChatResponse{
		Choices: []ChatChoice{{Message: types.NewAssistantMessage("ola")}},
	}
	text, err := FirstChoiceText(resp)
	require.NoError(t, err)
	assert.Equal(t, "ola", text)

	_, err = FirstChoiceText(&ChatResponse{})
	assert.Error(t, err)
}
