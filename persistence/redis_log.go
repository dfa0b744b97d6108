package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chathy-app/chathy/types"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed conversation log.
type RedisConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Password  string `yaml:"password" json:"password"`
	DB        int    `yaml:"db" json:"db"`
	PoolSize  int    `yaml:"pool_size" json:"pool_size"`
	KeyPrefix string `yaml:"key_prefix" json:"key_prefix"`
}

// RedisConversationLog is a Redis-backed ConversationLog. Each group's log
// is a Redis list of JSON-encoded messages; appends are RPUSH, the window
// is enforced with LTRIM.
type RedisConversationLog struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisConversationLog connects to Redis and verifies the connection.
func NewRedisConversationLog(cfg RedisConfig) (*RedisConversationLog, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "chathy:"
	}

	return &RedisConversationLog{
		client:    client,
		keyPrefix: keyPrefix + "log:",
	}, nil
}

// NewRedisConversationLogWithClient wraps an existing client (tests).
func NewRedisConversationLogWithClient(client *redis.Client, keyPrefix string) *RedisConversationLog {
	if keyPrefix == "" {
		keyPrefix = "chathy:"
	}
	return &RedisConversationLog{client: client, keyPrefix: keyPrefix + "log:"}
}

func (s *RedisConversationLog) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisConversationLog) Close() error {
	return s.client.Close()
}

func (s *RedisConversationLog) logKey(groupID string) string {
	return s.keyPrefix + groupID
}

func (s *RedisConversationLog) Append(ctx context.Context, msg types.GroupMessage) error {
	return s.AppendBatch(ctx, []types.GroupMessage{msg})
}

func (s *RedisConversationLog) AppendBatch(ctx context.Context, msgs []types.GroupMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
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
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal message %s: %w", msg.ID, err)
		}
		pipe.RPush(ctx, s.logKey(msg.GroupID), data)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisConversationLog) History(ctx context.Context, groupID string, limit int) ([]types.GroupMessage, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raw, err := s.client.LRange(ctx, s.logKey(groupID), start, -1).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]types.GroupMessage, 0, len(raw))
	for _, item := range raw {
		var msg types.GroupMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal log entry: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (s *RedisConversationLog) Trim(ctx context.Context, groupID string, max int) error {
	if max < 0 {
		return nil
	}
	if max == 0 {
		return s.client.Del(ctx, s.logKey(groupID)).Err()
	}
	return s.client.LTrim(ctx, s.logKey(groupID), int64(-max), -1).Err()
}

func (s *RedisConversationLog) Clear(ctx context.Context, groupID string) error {
	return s.client.Del(ctx, s.logKey(groupID)).Err()
}
