package persistence

import "fmt"

// StoreType represents the conversation log backend.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// StoreConfig selects and configures a conversation log backend.
type StoreConfig struct {
	Type  StoreType   `yaml:"type" json:"type"`
	Redis RedisConfig `yaml:"redis" json:"redis"`
}

// DefaultStoreConfig returns the in-memory backend.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{Type: StoreTypeMemory}
}

// NewConversationLog creates a ConversationLog for the configured backend.
func NewConversationLog(config StoreConfig) (ConversationLog, error) {
	switch config.Type {
	case StoreTypeMemory, "":
		return NewMemoryConversationLog(), nil
	case StoreTypeRedis:
		return NewRedisConversationLog(config.Redis)
	default:
		return nil, fmt.Errorf("unsupported conversation log type: %s", config.Type)
	}
}
