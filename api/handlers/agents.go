package handlers

import (
	"net/http"

	"github.com/chathy-app/chathy/types"
	"go.uber.org/zap"
)

// AgentHandler serves read-only access to the agent roster.
type AgentHandler struct {
	directory Directory
	logger    *zap.Logger
}

// NewAgentHandler creates an agent handler.
func NewAgentHandler(directory Directory, logger *zap.Logger) *AgentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentHandler{
		directory: directory,
		logger:    logger.With(zap.String("component", "agent_handler")),
	}
}

// HandleListAgents handles GET /api/v1/agents.
func (h *AgentHandler) HandleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.directory.Agents(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	WriteSuccess(w, agents)
}

// HandleGetAgent handles GET /api/v1/agents/{id}.
func (h *AgentHandler) HandleGetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := h.directory.Agent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	WriteSuccess(w, agent)
}

func (h *AgentHandler) writeErr(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*types.Error); ok {
		WriteError(w, apiErr, h.logger)
		return
	}
	WriteError(w, types.NewError(types.ErrInternalError, "internal error").WithCause(err), h.logger)
}
