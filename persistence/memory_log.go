package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/chathy-app/chathy/types"
	"github.com/google/uuid"
)

// MemoryConversationLog is the in-process implementation of ConversationLog.
// Suitable for development and tests; data is lost on restart.
type MemoryConversationLog struct {
	logs   map[string][]types.GroupMessage
	mu     sync.RWMutex
	closed bool
}

// NewMemoryConversationLog creates an empty in-memory conversation log.
func NewMemoryConversationLog() *MemoryConversationLog {
	return &MemoryConversationLog{
		logs: make(map[string][]types.GroupMessage),
	}
}

func (s *MemoryConversationLog) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

func (s *MemoryConversationLog) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *MemoryConversationLog) Append(ctx context.Context, msg types.GroupMessage) error {
	return s.AppendBatch(ctx, []types.GroupMessage{msg})
}

func (s *MemoryConversationLog) AppendBatch(ctx context.Context, msgs []types.GroupMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	for _, msg := range msgs {
		if msg.GroupID == "" {
			return ErrInvalidInput
		}
		if msg.ID == "" {
			msg.ID = uuid.New().String()
		}
		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now()
		}
		s.logs[msg.GroupID] = append(s.logs[msg.GroupID], msg)
	}
	return nil
}

func (s *MemoryConversationLog) History(ctx context.Context, groupID string, limit int) ([]types.GroupMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	log := s.logs[groupID]
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	out := make([]types.GroupMessage, len(log))
	copy(out, log)
	return out, nil
}

func (s *MemoryConversationLog) Trim(ctx context.Context, groupID string, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	log := s.logs[groupID]
	if max >= 0 && len(log) > max {
		trimmed := make([]types.GroupMessage, max)
		copy(trimmed, log[len(log)-max:])
		s.logs[groupID] = trimmed
	}
	return nil
}

func (s *MemoryConversationLog) Clear(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.logs, groupID)
	return nil
}
