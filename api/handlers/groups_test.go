package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chathy-app/chathy/group"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDirectory struct {
	groupsFunc func(ctx context.Context) ([]types.Group, error)
	groupFunc  func(ctx context.Context, id string) (*types.Group, error)
	agentsFunc func(ctx context.Context) ([]types.Agent, error)
	agentFunc  func(ctx context.Context, id string) (*types.Agent, error)
}

func (m *mockDirectory) Groups(ctx context.Context) ([]types.Group, error) {
	if m.groupsFunc != nil {
		return m.groupsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDirectory) Group(ctx context.Context, id string) (*types.Group, error) {
	if m.groupFunc != nil {
		return m.groupFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDirectory) Agents(ctx context.Context) ([]types.Agent, error) {
	if m.agentsFunc != nil {
		return m.agentsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDirectory) Agent(ctx context.Context, id string) (*types.Agent, error) {
	if m.agentFunc != nil {
		return m.agentFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockRunner struct {
	handleFunc func(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error)
}

func (m *mockRunner) HandleGroupMessage(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error) {
	if m.handleFunc != nil {
		return m.handleFunc(ctx, rawText, grp, allAgents, user, history)
	}
	return nil, errors.New("not implemented")
}

func fixtureGroup() types.Group {
	return types.Group{
		ID:        "marketing-team",
		Name:      "Time de Marketing",
		Members:   []string{"marketing-digital", "social-media"},
		CreatedBy: types.CreatedBySystem,
	}
}

func fixtureAgents() []types.Agent {
	return []types.Agent{
		{ID: "marketing-digital", Name: "Ana Silva", Title: "Especialista em Marketing Digital", IsActive: true},
		{ID: "social-media", Name: "Beatriz Costa", Title: "Social Media", IsActive: true},
	}
}

func foundDirectory() *mockDirectory {
	return &mockDirectory{
		groupsFunc: func(ctx context.Context) ([]types.Group, error) {
			return []types.Group{fixtureGroup()}, nil
		},
		groupFunc: func(ctx context.Context, id string) (*types.Group, error) {
			grp := fixtureGroup()
			if id != grp.ID {
				return nil, types.NewError(types.ErrGroupNotFound, "group not found: "+id)
			}
			return &grp, nil
		},
		agentsFunc: func(ctx context.Context) ([]types.Agent, error) {
			return fixtureAgents(), nil
		},
	}
}

func TestGroupHandler_HandleListGroups(t *testing.T) {
	h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	w := httptest.NewRecorder()
	h.HandleListGroups(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)

	groups, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, groups, 1)
}

func TestGroupHandler_HandleGetGroup(t *testing.T) {
	h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

	t.Run("found", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/marketing-team", nil)
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		h.HandleGetGroup(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/nope", nil)
		r.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		h.HandleGetGroup(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, string(types.ErrGroupNotFound), resp.Error.Code)
	})
}

func TestGroupHandler_HandleSendMessage(t *testing.T) {
	newRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/groups/marketing-team/messages", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.SetPathValue("id", "marketing-team")
		return r
	}

	t.Run("successful turn", func(t *testing.T) {
		log := persistence.NewMemoryConversationLog()
		prior := types.GroupMessage{ID: "m1", GroupID: "marketing-team", Content: "oi", Sender: types.SenderUser, Timestamp: time.Now()}
		require.NoError(t, log.Append(context.Background(), prior))

		var gotText string
		var gotHistory []types.GroupMessage
		var gotUser *types.UserProfile
		runner := &mockRunner{
			handleFunc: func(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error) {
				gotText = rawText
				gotHistory = history
				gotUser = user

				reply := types.NewAgentGroupMessage("r1", grp.ID, "Oi! Como posso ajudar?", allAgents[0])
				userMsg := types.NewUserGroupMessage("u1", grp.ID, rawText, user)
				return &group.TurnResult{
					UserMessage: userMsg,
					Replies:     []types.GroupMessage{reply},
					History:     append(history, userMsg, reply),
					Outcome:     group.OutcomeArbiter,
				}, nil
			},
		}

		h := NewGroupHandler(foundDirectory(), log, runner, 100, zap.NewNop())

		r := newRequest(`{"text":"preciso de ajuda com anúncios","user":{"id":"u-1","name":"Bruno"}}`)
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.Equal(t, "preciso de ajuda com anúncios", gotText)
		require.Len(t, gotHistory, 1)
		assert.Equal(t, "m1", gotHistory[0].ID)
		require.NotNil(t, gotUser)
		assert.Equal(t, "Bruno", gotUser.Name)

		var resp struct {
			Success bool                `json:"success"`
			Data    SendMessageResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "preciso de ajuda com anúncios", resp.Data.UserMessage.Content)
		require.Len(t, resp.Data.Replies, 1)
		assert.Equal(t, "marketing-digital", resp.Data.Replies[0].AgentID)
		assert.Equal(t, group.OutcomeArbiter, resp.Data.Selection)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

		r := newRequest(`{"text":"   "}`)
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing content type rejected", func(t *testing.T) {
		h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/groups/marketing-team/messages", strings.NewReader(`{"text":"oi"}`))
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown group", func(t *testing.T) {
		h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/groups/nope/messages", strings.NewReader(`{"text":"oi"}`))
		r.Header.Set("Content-Type", "application/json")
		r.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("length rejection from runner maps to 400", func(t *testing.T) {
		runner := &mockRunner{
			handleFunc: func(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error) {
				return nil, types.NewError(types.ErrMessageTooLong, "message exceeds maximum length of 800 characters")
			},
		}
		h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), runner, 100, zap.NewNop())

		r := newRequest(`{"text":"oi"}`)
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, string(types.ErrMessageTooLong), resp.Error.Code)
	})

	t.Run("unexpected runner error maps to 500", func(t *testing.T) {
		runner := &mockRunner{
			handleFunc: func(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error) {
				return nil, errors.New("boom")
			},
		}
		h := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), runner, 100, zap.NewNop())

		r := newRequest(`{"text":"oi"}`)
		w := httptest.NewRecorder()
		h.HandleSendMessage(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGroupHandler_HandleHistory(t *testing.T) {
	log := persistence.NewMemoryConversationLog()
	for _, id := range []string{"m1", "m2", "m3"} {
		msg := types.GroupMessage{ID: id, GroupID: "marketing-team", Content: id, Sender: types.SenderUser, Timestamp: time.Now()}
		require.NoError(t, log.Append(context.Background(), msg))
	}

	h := NewGroupHandler(foundDirectory(), log, &mockRunner{}, 100, zap.NewNop())

	t.Run("full history", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/marketing-team/messages", nil)
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		h.HandleHistory(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []types.GroupMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 3)
		assert.Equal(t, "m1", resp.Data[0].ID)
	})

	t.Run("limit returns latest entries", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/marketing-team/messages?limit=2", nil)
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		h.HandleHistory(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []types.GroupMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "m2", resp.Data[0].ID)
		assert.Equal(t, "m3", resp.Data[1].ID)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/marketing-team/messages?limit=zero", nil)
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		h.HandleHistory(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty log yields empty array", func(t *testing.T) {
		empty := NewGroupHandler(foundDirectory(), persistence.NewMemoryConversationLog(), &mockRunner{}, 100, zap.NewNop())

		r := httptest.NewRequest(http.MethodGet, "/api/v1/groups/marketing-team/messages", nil)
		r.SetPathValue("id", "marketing-team")
		w := httptest.NewRecorder()
		empty.HandleHistory(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestGroupHandler_HandleClearHistory(t *testing.T) {
	log := persistence.NewMemoryConversationLog()
	msg := types.GroupMessage{ID: "m1", GroupID: "marketing-team", Content: "oi", Sender: types.SenderUser, Timestamp: time.Now()}
	require.NoError(t, log.Append(context.Background(), msg))

	h := NewGroupHandler(foundDirectory(), log, &mockRunner{}, 100, zap.NewNop())

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/groups/marketing-team/messages", nil)
	r.SetPathValue("id", "marketing-team")
	w := httptest.NewRecorder()
	h.HandleClearHistory(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	history, err := log.History(context.Background(), "marketing-team", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
