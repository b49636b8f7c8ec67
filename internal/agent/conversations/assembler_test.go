package conversations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusflow-ai/server/internal/agent/model"
)

// memoryStore is an in-memory ConversationStore for tests.
type memoryStore struct {
	records map[string]*model.ConversationRecord
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]*model.ConversationRecord)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) *model.ConversationRecord {
	if rec, ok := s.records[userID]; ok {
		return rec
	}
	return model.EmptyRecord(userID)
}

func (s *memoryStore) Put(ctx context.Context, userID string, messages []model.Turn, metadata map[string]any) error {
	if s.putErr != nil {
		return s.putErr
	}
	rec := model.EmptyRecord(userID)
	rec.Messages = messages
	rec.Metadata = metadata
	s.records[userID] = rec
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, userID string) error {
	delete(s.records, userID)
	return nil
}

func testConversationConfig() model.ConversationConfig {
	var cfg model.ConversationConfig
	cfg.Context.HintTurns = 4
	cfg.Context.TrimMessages = 6
	cfg.Context.NoteMessages = 3
	return cfg
}

func turn(role schema.RoleType, content string) model.Turn {
	return model.Turn{Role: role, Content: content}
}

func TestRecentProductHint(t *testing.T) {
	t.Run("empty history yields no hint", func(t *testing.T) {
		assert.Empty(t, RecentProductHint(nil, 4))
	})

	t.Run("ids outside the scan window are ignored", func(t *testing.T) {
		messages := []model.Turn{
			turn(schema.User, "tell me about i9901"),
			turn(schema.Assistant, "the i9901 is our tour golf cap"),
			turn(schema.User, "what about trucker caps?"),
			turn(schema.Assistant, "we have several"),
			turn(schema.User, "any in navy?"),
			turn(schema.Assistant, "yes, most come in navy"),
		}
		assert.Empty(t, RecentProductHint(messages, 4))
	})

	t.Run("recent ids appear in first mention order", func(t *testing.T) {
		messages := []model.Turn{
			turn(schema.User, "do you have snapbacks?"),
			turn(schema.User, "tell me about i7041"),
			turn(schema.Assistant, "i7041 is the Pro Series Snapback; i8501 is similar"),
			turn(schema.User, "which is cheaper?"),
		}
		hint := RecentProductHint(messages, 4)
		assert.Contains(t, hint, "RECENT CONTEXT")
		assert.Contains(t, hint, "i7041, i8501")
		assert.Contains(t, hint, "that hat")
	})
}

func TestBuildHint(t *testing.T) {
	store := newMemoryStore()
	asm := NewAssembler(store, testConversationConfig())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", []model.Turn{
		turn(schema.User, "what colors does i8502 come in?"),
		turn(schema.Assistant, "the i8502 comes in four two-tone combinations"),
	}, nil))

	assert.Contains(t, asm.BuildHint(ctx, "u1"), "i8502")
	assert.Empty(t, asm.BuildHint(ctx, "unknown-user"))
}

func TestTrimForAgent(t *testing.T) {
	asm := NewAssembler(newMemoryStore(), testConversationConfig())

	t.Run("single message passes through untouched", func(t *testing.T) {
		in := []model.Turn{turn(schema.User, "hello")}
		out := asm.TrimForAgent(in)
		require.Len(t, out, 1)
		assert.Equal(t, in[0], out[0])
	})

	t.Run("long history trims to six plus a system note", func(t *testing.T) {
		var in []model.Turn
		for i := 0; i < 10; i++ {
			role := schema.User
			if i%2 == 1 {
				role = schema.Assistant
			}
			in = append(in, turn(role, fmt.Sprintf("message %d", i)))
		}

		out := asm.TrimForAgent(in)
		require.Len(t, out, 7)

		// six most recent originals
		for i := 0; i < 6; i++ {
			assert.Equal(t, in[4+i], out[i])
		}

		note := out[6]
		assert.Equal(t, schema.System, note.Role)
		require.True(t, strings.HasPrefix(note.Content, "Conversation history for context: "))

		var contents []string
		raw := strings.TrimPrefix(note.Content, "Conversation history for context: ")
		require.NoError(t, json.Unmarshal([]byte(raw), &contents))
		assert.Equal(t, []string{"message 7", "message 8", "message 9"}, contents)
	})

	t.Run("two messages keep both plus the note", func(t *testing.T) {
		in := []model.Turn{
			turn(schema.User, "first"),
			turn(schema.Assistant, "second"),
		}
		out := asm.TrimForAgent(in)
		require.Len(t, out, 3)
		assert.Equal(t, in[0], out[0])
		assert.Equal(t, in[1], out[1])
		assert.Equal(t, schema.System, out[2].Role)
	})
}

func TestAppendAndPersist(t *testing.T) {
	ctx := context.Background()

	t.Run("appends the raw question and answer", func(t *testing.T) {
		store := newMemoryStore()
		asm := NewAssembler(store, testConversationConfig())

		asm.AppendAndPersist(ctx, "u1", "what is i7041?", "the Pro Series Snapback")
		asm.AppendAndPersist(ctx, "u1", "how much?", "from $11.50 per unit")

		rec := store.Get(ctx, "u1")
		require.Len(t, rec.Messages, 4)
		assert.Equal(t, turn(schema.User, "what is i7041?"), rec.Messages[0])
		assert.Equal(t, turn(schema.Assistant, "the Pro Series Snapback"), rec.Messages[1])
		assert.Equal(t, turn(schema.User, "how much?"), rec.Messages[2])
		assert.Equal(t, turn(schema.Assistant, "from $11.50 per unit"), rec.Messages[3])
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		store := newMemoryStore()
		store.putErr = fmt.Errorf("redis down")
		asm := NewAssembler(store, testConversationConfig())

		assert.NotPanics(t, func() {
			asm.AppendAndPersist(ctx, "u1", "q", "a")
		})
	})
}

func TestToSchemaMessages(t *testing.T) {
	msgs := ToSchemaMessages([]model.Turn{
		turn(schema.User, "hi"),
		turn(schema.Assistant, "hello"),
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, schema.Assistant, msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}
