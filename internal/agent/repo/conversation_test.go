package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusflow-ai/server/internal/agent/model"
)

const testTTL = 12 * time.Hour

func newTestStore(t *testing.T) (*RedisConversationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisConversationStore(client, testTTL, 300*time.Millisecond), mr
}

func TestGetUnknownUserReturnsEmptyRecord(t *testing.T) {
	store, _ := newTestStore(t)

	rec := store.Get(context.Background(), "nobody")
	require.NotNil(t, rec)
	assert.Equal(t, "nobody", rec.UserID)
	assert.Empty(t, rec.Messages)
	assert.NotNil(t, rec.Metadata)
}

func TestPutGetRoundtrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	messages := []model.Turn{
		{Role: schema.User, Content: "tell me about i7041"},
		{Role: schema.Assistant, Content: "the Pro Series Snapback"},
	}
	require.NoError(t, store.Put(ctx, "u1", messages, map[string]any{"channel": "web"}))

	rec := store.Get(ctx, "u1")
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, messages, rec.Messages)
	assert.Equal(t, "web", rec.Metadata["channel"])
	assert.False(t, rec.LastUpdated.IsZero())

	assert.Equal(t, testTTL, mr.TTL("conversation:u1"))
}

func TestPutResetsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi"}}, nil))
	mr.FastForward(6 * time.Hour)
	assert.Equal(t, 6*time.Hour, mr.TTL("conversation:u1"))

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi again"}}, nil))
	assert.Equal(t, testTTL, mr.TTL("conversation:u1"))
}

func TestExpiredRecordDegradesToEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi"}}, nil))
	mr.FastForward(testTTL + time.Minute)

	rec := store.Get(ctx, "u1")
	assert.Empty(t, rec.Messages)
}

func TestCorruptRecordDegradesToEmpty(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("conversation:u1", "{not json"))

	rec := store.Get(context.Background(), "u1")
	assert.Equal(t, "u1", rec.UserID)
	assert.Empty(t, rec.Messages)
}

func TestClearIsIdempotent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi"}}, nil))
	require.NoError(t, store.Clear(ctx, "u1"))
	assert.False(t, mr.Exists("conversation:u1"))

	// clearing an already absent record is still fine
	require.NoError(t, store.Clear(ctx, "u1"))
	require.NoError(t, store.Clear(ctx, "never-seen"))
}

func TestOutageDegradesReadsButFailsWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedisConversationStore(client, testTTL, 300*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi"}}, nil))
	mr.Close()

	rec := store.Get(ctx, "u1")
	require.NotNil(t, rec)
	assert.Empty(t, rec.Messages)

	assert.Error(t, store.Put(ctx, "u1", []model.Turn{{Role: schema.User, Content: "hi"}}, nil))
	assert.Error(t, store.Clear(ctx, "u1"))
}
