package model

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Turn is one role-tagged message in a conversation history.
type Turn struct {
	Role    schema.RoleType `json:"role"`
	Content string          `json:"content"`
}

// ConversationRecord is the whole stored state for one user: an ordered,
// append-only message history plus free-form metadata. It is serialized
// as a single JSON value under the user's key.
type ConversationRecord struct {
	UserID      string         `json:"user_id"`
	Messages    []Turn         `json:"messages"`
	Metadata    map[string]any `json:"metadata"`
	LastUpdated time.Time      `json:"last_updated"`
}

// EmptyRecord returns the record shape used for absent or expired users.
func EmptyRecord(userID string) *ConversationRecord {
	return &ConversationRecord{
		UserID:   userID,
		Messages: []Turn{},
		Metadata: map[string]any{},
	}
}

// ConversationStore persists per-user conversation history with a fixed
// TTL refreshed on every write. Continuity is best-effort: Get never
// fails, and a storage outage must not break the answering path.
type ConversationStore interface {
	// Get returns the stored record, or an empty record when the user is
	// unknown, the record has expired, or the backing store is
	// unreachable. The returned record is never nil.
	Get(ctx context.Context, userID string) *ConversationRecord

	// Put replaces the user's record with the given messages and
	// metadata, stamping last_updated and resetting the TTL.
	Put(ctx context.Context, userID string, messages []Turn, metadata map[string]any) error

	// Clear deletes the user's record unconditionally. Clearing an
	// absent user is a no-op.
	Clear(ctx context.Context, userID string) error
}
