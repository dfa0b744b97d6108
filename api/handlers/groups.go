package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chathy-app/chathy/group"
	"github.com/chathy-app/chathy/persistence"
	"github.com/chathy-app/chathy/types"
	"go.uber.org/zap"
)

// turnTimeout bounds one conversation turn end to end, including every
// responder's completion call.
const turnTimeout = 2 * time.Minute

// Directory is the read surface of the agent and group registry consumed by
// the handlers. Satisfied by *persistence.Registry.
type Directory interface {
	Groups(ctx context.Context) ([]types.Group, error)
	Group(ctx context.Context, id string) (*types.Group, error)
	Agents(ctx context.Context) ([]types.Agent, error)
	Agent(ctx context.Context, id string) (*types.Agent, error)
}

// TurnRunner processes one inbound group message. Satisfied by
// *group.Orchestrator.
type TurnRunner interface {
	HandleGroupMessage(ctx context.Context, rawText string, grp types.Group, allAgents []types.Agent, user *types.UserProfile, history []types.GroupMessage) (*group.TurnResult, error)
}

// GroupHandler serves the group conversation endpoints.
type GroupHandler struct {
	directory    Directory
	log          persistence.ConversationLog
	runner       TurnRunner
	historyLimit int
	logger       *zap.Logger
}

// NewGroupHandler creates a group handler. historyLimit is the number of log
// entries loaded as context for a turn and returned by default from the
// history endpoint.
func NewGroupHandler(directory Directory, log persistence.ConversationLog, runner TurnRunner, historyLimit int, logger *zap.Logger) *GroupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupHandler{
		directory:    directory,
		log:          log,
		runner:       runner,
		historyLimit: historyLimit,
		logger:       logger.With(zap.String("component", "group_handler")),
	}
}

// SendMessageRequest is the body of POST /api/v1/groups/{id}/messages.
type SendMessageRequest struct {
	Text string             `json:"text"`
	User *types.UserProfile `json:"user,omitempty"`
}

// SendMessageResponse is the result of one processed turn.
type SendMessageResponse struct {
	UserMessage types.GroupMessage     `json:"user_message"`
	Replies     []types.GroupMessage   `json:"replies"`
	History     []types.GroupMessage   `json:"history"`
	Selection   group.SelectionOutcome `json:"selection"`
}

// HandleListGroups handles GET /api/v1/groups.
func (h *GroupHandler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.directory.Groups(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	WriteSuccess(w, groups)
}

// HandleGetGroup handles GET /api/v1/groups/{id}.
func (h *GroupHandler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	grp, err := h.directory.Group(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	WriteSuccess(w, grp)
}

// HandleSendMessage handles POST /api/v1/groups/{id}/messages. It loads the
// group, its roster and the recent history, runs one orchestrated turn and
// returns the produced messages.
func (h *GroupHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req SendMessageRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "text must not be empty", h.logger)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), turnTimeout)
	defer cancel()

	grp, err := h.directory.Group(ctx, r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	agents, err := h.directory.Agents(ctx)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	history, err := h.log.History(ctx, grp.ID, h.historyLimit)
	if err != nil {
		// A turn can still run without prior context.
		h.logger.Warn("failed to load history, starting turn without context",
			zap.String("group_id", grp.ID),
			zap.Error(err),
		)
		history = nil
	}

	result, err := h.runner.HandleGroupMessage(ctx, req.Text, *grp, agents, req.User, history)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	WriteSuccess(w, SendMessageResponse{
		UserMessage: result.UserMessage,
		Replies:     result.Replies,
		History:     result.History,
		Selection:   result.Outcome,
	})
}

// HandleHistory handles GET /api/v1/groups/{id}/messages. An optional limit
// query parameter caps the number of returned entries.
func (h *GroupHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	grp, err := h.directory.Group(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "limit must be a positive integer", h.logger)
			return
		}
		limit = parsed
	}

	history, err := h.log.History(r.Context(), grp.ID, limit)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if history == nil {
		history = []types.GroupMessage{}
	}
	WriteSuccess(w, history)
}

// HandleClearHistory handles DELETE /api/v1/groups/{id}/messages. It removes
// the group's entire conversation log.
func (h *GroupHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	grp, err := h.directory.Group(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	if err := h.log.Clear(r.Context(), grp.ID); err != nil {
		h.writeErr(w, err)
		return
	}

	h.logger.Info("conversation history cleared", zap.String("group_id", grp.ID))
	WriteSuccess(w, map[string]string{"group_id": grp.ID, "status": "cleared"})
}

func (h *GroupHandler) writeErr(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*types.Error); ok {
		WriteError(w, apiErr, h.logger)
		return
	}
	WriteError(w, types.NewError(types.ErrInternalError, "internal error").WithCause(err), h.logger)
}
