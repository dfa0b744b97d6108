// Package persistence provides the storage collaborators consumed by the
// orchestration core: an append-only per-group conversation log and a
// registry of agents and groups. The core never deletes log entries;
// eviction is the logical window enforced by Trim.
package persistence

import (
	"context"

	"github.com/chathy-app/chathy/types"
)

// Store is the common lifecycle contract for all backends.
type Store interface {
	// Ping checks if the store is healthy.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// ConversationLog is an append-only ordered message log keyed by group id.
type ConversationLog interface {
	Store

	// Append persists a single message at the tail of its group's log.
	Append(ctx context.Context, msg types.GroupMessage) error

	// AppendBatch persists multiple messages in order.
	AppendBatch(ctx context.Context, msgs []types.GroupMessage) error

	// History returns the last limit entries of a group's log, oldest
	// first. A non-positive limit returns the full log.
	History(ctx context.Context, groupID string, limit int) ([]types.GroupMessage, error)

	// Trim evicts the oldest entries so at most max remain.
	Trim(ctx context.Context, groupID string, max int) error

	// Clear removes a group's entire log (user-initiated data reset).
	Clear(ctx context.Context, groupID string) error
}

// Shared store errors.
var (
	ErrStoreClosed  = types.NewError(types.ErrStoreClosed, "store is closed")
	ErrInvalidInput = types.NewError(types.ErrInvalidRequest, "invalid store input")
)
