package model

import (
	"github.com/cloudwego/eino/schema"
)

// AppState stores per-invocation state for the agent graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers
//     (WithStatePreHandler, WithStatePostHandler, compose.ProcessState),
//     which Eino serializes, so no extra locking is needed.
//   - Persistence never goes through this struct; the conversation
//     store is written by the assistant after the graph finishes.
type AppState struct {
	History              []*schema.Message // mutated only inside state handlers
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // synthesizes tool_call_id when the provider omits it

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}
