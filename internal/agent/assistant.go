package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexusflow-ai/server/internal/agent/conversations"
	"github.com/nexusflow-ai/server/internal/agent/graph"
	"github.com/nexusflow-ai/server/internal/agent/graph/prompts"
	"github.com/nexusflow-ai/server/internal/agent/model"
	logx "github.com/nexusflow-ai/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// Assistant answers product-catalog questions with per-user
// conversation continuity. Memory is best-effort: a storage outage
// degrades to an uninformed answer, never to a failed request. An agent
// failure fails the whole request; there are no retries.
type Assistant struct {
	store     model.ConversationStore
	assembler *conversations.Assembler
	runner    graph.Runner
	promptCfg model.AssistantPromptConfig
}

func NewAssistant(
	store model.ConversationStore,
	assembler *conversations.Assembler,
	runner graph.Runner,
	promptCfg model.AssistantPromptConfig,
) *Assistant {
	return &Assistant{
		store:     store,
		assembler: assembler,
		runner:    runner,
		promptCfg: promptCfg,
	}
}

// Answer runs one question/answer cycle for the user: recent-product
// hint, contextual prompt, trimmed history to the agent, then the raw
// question and answer appended back to the store.
func (a *Assistant) Answer(ctx context.Context, userID, query string) (string, error) {
	userID = strings.TrimSpace(userID)
	query = strings.TrimSpace(query)
	if userID == "" || query == "" {
		return "", fmt.Errorf("user_id and query are required")
	}

	hint := a.assembler.BuildHint(ctx, userID)

	contextual, err := prompts.RenderAssistant(ctx, a.promptCfg, prompts.AssistantVars{
		RecentContext: hint,
		Question:      query,
	})
	if err != nil {
		return "", fmt.Errorf("render assistant prompt: %w", err)
	}

	rec := a.assembler.Record(ctx, userID)
	outbound := append(rec.Messages, model.Turn{Role: schema.User, Content: contextual})
	payload := a.assembler.TrimForAgent(outbound)

	answer, err := a.runner.Invoke(ctx, conversations.ToSchemaMessages(payload))
	if err != nil {
		return "", fmt.Errorf("agent invoke: %w", err)
	}

	a.assembler.AppendAndPersist(ctx, userID, query, answer)

	logx.Debug().
		Str("user_id", userID).
		Bool("had_hint", hint != "").
		Int("payload_messages", len(payload)).
		Msg("question answered")

	return answer, nil
}

// ClearMemory drops the user's conversation history. Clearing an
// unknown user is a no-op.
func (a *Assistant) ClearMemory(ctx context.Context, userID string) error {
	return a.store.Clear(ctx, userID)
}
