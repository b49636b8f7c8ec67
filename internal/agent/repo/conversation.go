package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexusflow-ai/server/internal/agent/model"
	errx "github.com/nexusflow-ai/server/internal/core/error"
	logx "github.com/nexusflow-ai/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisConversationStore keeps one JSON record per user under
// conversation:<user_id> with a fixed TTL refreshed on every write.
//
// Get/Put is deliberately not transactional: two concurrent requests for
// the same user can each read the same history, append independently,
// and the later Put wins. That is acceptable for a single human typing
// sequentially and is left as-is rather than locked away.
type RedisConversationStore struct {
	rdb         redis.Cmdable
	ttl         time.Duration
	readTimeout time.Duration
}

func NewRedisConversationStore(rdb redis.Cmdable, ttl, readTimeout time.Duration) *RedisConversationStore {
	return &RedisConversationStore{rdb: rdb, ttl: ttl, readTimeout: readTimeout}
}

func (s *RedisConversationStore) conversationKey(userID string) string {
	return fmt.Sprintf("conversation:%s", userID)
}

// Get loads the user's record. Absence, expiry, decode failures and
// store outages all degrade to an empty record; continuity is lost for
// the turn, never the answer.
func (s *RedisConversationStore) Get(ctx context.Context, userID string) *model.ConversationRecord {
	if s.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
	}

	key := s.conversationKey(userID)
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to load conversation record, continuing without memory")
		}
		return model.EmptyRecord(userID)
	}

	var rec model.ConversationRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to decode conversation record, continuing without memory")
		return model.EmptyRecord(userID)
	}
	if rec.Messages == nil {
		rec.Messages = []model.Turn{}
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	rec.UserID = userID
	return &rec
}

// Put overwrites the whole record and resets the TTL to its full
// duration from the moment of this write.
func (s *RedisConversationStore) Put(ctx context.Context, userID string, messages []model.Turn, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	rec := model.ConversationRecord{
		UserID:      userID,
		Messages:    messages,
		Metadata:    metadata,
		LastUpdated: time.Now().UTC(),
	}

	b, err := json.Marshal(&rec)
	if err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to marshal conversation record")
		return fmt.Errorf("marshal conversation record: %w", err)
	}

	key := s.conversationKey(userID)
	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store conversation record")
		return errx.WrapRedis(err)
	}
	return nil
}

// Clear deletes the record unconditionally; deleting an absent key is a no-op.
func (s *RedisConversationStore) Clear(ctx context.Context, userID string) error {
	key := s.conversationKey(userID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to clear conversation record")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ConversationStore = (*RedisConversationStore)(nil)
