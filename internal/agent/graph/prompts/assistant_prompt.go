package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nexusflow-ai/server/internal/agent/graph/tools"
	"github.com/nexusflow-ai/server/internal/agent/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/assistant_prompt.txt
var assistantPrompt string

// AssistantVars carries the per-question values rendered into the
// assistant prompt template.
type AssistantVars struct {
	RecentContext   string
	StylePreference string
	Question        string
}

// RenderAssistant renders the contextual question sent to the agent as
// the outbound user turn. Rendering goes through the Eino prompt
// component so prompt callbacks fire.
func RenderAssistant(ctx context.Context, cfg model.AssistantPromptConfig, vars AssistantVars) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(assistantPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BusinessName":     cfg.BusinessName,
		"BusinessType":     cfg.BusinessType,
		"RecentContext":    vars.RecentContext,
		"StylePreference":  vars.StylePreference,
		"Question":         vars.Question,
		"InfoTool":         tools.ToolGetProductInfo,
		"SearchTool":       tools.ToolSearchProducts,
		"PricingTool":      tools.ToolGetProductPricing,
		"AllProductsTool":  tools.ToolGetAllProducts,
		"PatchPricingTool": tools.ToolGetPatchPricing,
		"TotalPriceTool":   tools.ToolCalculateTotalPrice,
	})
	if err != nil {
		return "", fmt.Errorf("assistant prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("assistant prompt render: empty result")
	}
	return msgs[0].Content, nil
}
