package conversations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nexusflow-ai/server/internal/agent/model"
	logx "github.com/nexusflow-ai/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// Assembler builds the outbound message list for the agent and writes
// the finished turn back to the store. It holds no state of its own;
// everything lives in the ConversationStore.
type Assembler struct {
	store        model.ConversationStore
	hintTurns    int
	trimMessages int
	noteMessages int
}

func NewAssembler(store model.ConversationStore, cfg model.ConversationConfig) *Assembler {
	return &Assembler{
		store:        store,
		hintTurns:    cfg.Context.HintTurns,
		trimMessages: cfg.Context.TrimMessages,
		noteMessages: cfg.Context.NoteMessages,
	}
}

// Record exposes the current stored record for the user.
func (a *Assembler) Record(ctx context.Context, userID string) *model.ConversationRecord {
	return a.store.Get(ctx, userID)
}

// BuildHint scans the most recent turns for catalog product IDs and,
// when any are found, phrases them as a context hint so the model can
// resolve vague references like "that hat" to a concrete product.
func (a *Assembler) BuildHint(ctx context.Context, userID string) string {
	rec := a.store.Get(ctx, userID)
	return RecentProductHint(rec.Messages, a.hintTurns)
}

// RecentProductHint is the pure core of BuildHint, operating on an
// already-loaded message list.
func RecentProductHint(messages []model.Turn, hintTurns int) string {
	recent := tailTurns(messages, hintTurns)

	var ids []string
	seen := make(map[string]struct{})
	for _, turn := range recent {
		for _, id := range ExtractProductIDs(turn.Content) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"RECENT CONTEXT: Customer was recently asking about product(s): %s. "+
			"When they refer to 'that hat' or similar, they likely mean one of these products.",
		strings.Join(ids, ", "),
	)
}

// TrimForAgent prepares the payload sent to the agent. A single message
// passes through untouched. With prior history, the last trimMessages
// entries are kept and one extra system turn is synthesized restating
// the last noteMessages contents as JSON, a second context-injection
// mechanism retained for compatibility with the upstream prompting.
func (a *Assembler) TrimForAgent(messages []model.Turn) []model.Turn {
	if len(messages) <= 1 {
		out := make([]model.Turn, len(messages))
		copy(out, messages)
		return out
	}

	trimmed := tailTurns(messages, a.trimMessages)
	note := tailTurns(trimmed, a.noteMessages)

	contents := make([]string, 0, len(note))
	for _, turn := range note {
		contents = append(contents, turn.Content)
	}
	encoded, err := json.Marshal(contents)
	if err != nil {
		// strings always marshal; guard anyway
		encoded = []byte("[]")
	}

	return append(trimmed, model.Turn{
		Role:    schema.System,
		Content: fmt.Sprintf("Conversation history for context: %s", encoded),
	})
}

// AppendAndPersist re-reads the record, appends the question/answer
// pair and writes the whole record back, refreshing the TTL. Storage
// failure is logged and swallowed: memory is best-effort and must never
// fail the answering path.
func (a *Assembler) AppendAndPersist(ctx context.Context, userID, question, answer string) {
	rec := a.store.Get(ctx, userID)
	messages := append(rec.Messages,
		model.Turn{Role: schema.User, Content: question},
		model.Turn{Role: schema.Assistant, Content: answer},
	)
	if err := a.store.Put(ctx, userID, messages, rec.Metadata); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to persist conversation turn")
	}
}

// ToSchemaMessages converts stored turns into eino messages.
func ToSchemaMessages(turns []model.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, &schema.Message{Role: t.Role, Content: t.Content})
	}
	return msgs
}

// tailTurns returns a copy of the last n turns.
func tailTurns(messages []model.Turn, n int) []model.Turn {
	if n <= 0 {
		return nil
	}
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	out := make([]model.Turn, len(messages))
	copy(out, messages)
	return out
}
