package persistence

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationLog(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		config  StoreConfig
		want    any
		wantErr bool
	}{
		{
			name:   "memory",
			config: StoreConfig{Type: StoreTypeMemory},
			want:   &MemoryConversationLog{},
		},
		{
			name:   "empty type defaults to memory",
			config: StoreConfig{},
			want:   &MemoryConversationLog{},
		},
		{
			name:   "redis",
			config: StoreConfig{Type: StoreTypeRedis, Redis: RedisConfig{Addr: mr.Addr()}},
			want:   &RedisConversationLog{},
		},
		{
			name:    "unsupported",
			config:  StoreConfig{Type: "etcd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewConversationLog(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, log)
			log.Close()
		})
	}
}

func TestDefaultStoreConfig(t *testing.T) {
	cfg := DefaultStoreConfig()
	assert.Equal(t, StoreTypeMemory, cfg.Type)
}
