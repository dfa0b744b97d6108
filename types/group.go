package types

import "time"

// GroupProvenance records who created a group.
type GroupProvenance string

const (
	CreatedByUser   GroupProvenance = "user"
	CreatedBySystem GroupProvenance = "system"
)

// Group is a named roster of agents sharing one conversation.
// Members is an ordered set of agent ids; uniqueness is required but ids that
// do not resolve to a known agent are treated as absent, not as an error.
type Group struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Members     []string        `json:"members" gorm:"serializer:json"`
	Icon        string          `json:"icon,omitempty"`
	Color       string          `json:"color,omitempty"`
	IsDefault   bool            `json:"is_default"`
	CreatedBy   GroupProvenance `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Sender identifies who authored a group message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAgent  Sender = "agent"
	SenderSystem Sender = "system"
)

// GroupMessage is one entry in a group conversation log. The log is ordered
// by append time and only ever grows, except for windowed eviction.
type GroupMessage struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Sender       Sender    `json:"sender"`
	SenderName   string    `json:"sender_name,omitempty"`
	SenderAvatar string    `json:"sender_avatar,omitempty"`
	AgentID      string    `json:"agent_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	GroupID      string    `json:"group_id"`
	Mentions     []string  `json:"mentions,omitempty"`
}

// NewUserGroupMessage creates an inbound user message for a group.
func NewUserGroupMessage(id, groupID, content string, user *UserProfile) GroupMessage {
	msg := GroupMessage{
		ID:        id,
		Content:   content,
		Sender:    SenderUser,
		Timestamp: time.Now(),
		GroupID:   groupID,
	}
	if user != nil {
		msg.SenderName = user.Name
		msg.SenderAvatar = user.Avatar
	}
	return msg
}

// NewAgentGroupMessage creates an agent-authored reply message.
func NewAgentGroupMessage(id, groupID, content string, agent Agent) GroupMessage {
	return GroupMessage{
		ID:           id,
		Content:      content,
		Sender:       SenderAgent,
		SenderName:   agent.Name,
		SenderAvatar: agent.Avatar,
		AgentID:      agent.ID,
		Timestamp:    time.Now(),
		GroupID:      groupID,
	}
}

// NewSystemGroupMessage creates a system notice entry.
func NewSystemGroupMessage(id, groupID, content string) GroupMessage {
	return GroupMessage{
		ID:         id,
		Content:    content,
		Sender:     SenderSystem,
		SenderName: "Sistema",
		Timestamp:  time.Now(),
		GroupID:    groupID,
	}
}
