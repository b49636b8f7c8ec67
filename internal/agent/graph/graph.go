package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nexusflow-ai/server/internal/agent/graph/nodes"
	"github.com/nexusflow-ai/server/internal/agent/graph/observers"
	"github.com/nexusflow-ai/server/internal/agent/graph/tools"
	"github.com/nexusflow-ai/server/internal/agent/model"
	"github.com/nexusflow-ai/server/internal/catalog"
	logx "github.com/nexusflow-ai/server/pkg/logger"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Runner executes the compiled agent graph: a role-tagged message list
// in, the final assistant text out.
type Runner interface {
	Invoke(ctx context.Context, messages []*schema.Message) (string, error)
}

// Config holds everything needed to compose the agent graph end-to-end.
type Config struct {
	APIKey        string
	BaseURL       string
	ResponseModel model.ResponseModelConfig
	ToolMaxCalls  int
	Catalog       *catalog.Catalog
}

// GraphBuilder handles the construction of the agent tool-loop graph.
type GraphBuilder struct {
	chatModel    *nodes.ChatModel
	catalog      *catalog.Catalog
	toolMaxCalls int
	graph        *compose.Graph[[]*schema.Message, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[[]*schema.Message, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, messages []*schema.Message) (string, error) {
	out, err := r.runnable.Invoke(ctx, messages, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	if len(out.Extra) > 0 {
		if b, err := json.Marshal(out.Extra); err == nil {
			logx.Debug().RawJSON("extra", b).Msg("agent response extra")
		}
	}
	return out.Content, nil
}

// BuildAgentGraph creates the chat model, wires the tool loop and
// returns a Runner.
func BuildAgentGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	cm, err := nodes.NewChatModel(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		RespConfig: &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	builder := &GraphBuilder{
		chatModel:    cm,
		catalog:      cfg.Catalog,
		toolMaxCalls: cfg.ToolMaxCalls,
		graph: compose.NewGraph[[]*schema.Message, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}
	builder.addNodes()
	builder.addEdges()
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Agent graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// setupTools configures the catalog tools, binds them to the chat model
// and adds the tool executor node.
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	catalogTools := tools.NewQueryTools(b.catalog)
	toolInfos, err := tools.GetToolInfos(ctx, catalogTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.chatModel.BindTools(ctx, toolInfos); err != nil {
		return err
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               catalogTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			// Gracefully handle hallucinated or malformed tool calls
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
		ToolArgumentsHandler: sanitizeToolArguments,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.toolMaxCalls)),
	)

	return nil
}

// sanitizeToolArguments best-effort normalizes model-produced tool
// arguments; it never fails hard.
func sanitizeToolArguments(ctx context.Context, name, arguments string) (string, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		// keep original if not JSON
		return arguments, nil
	}

	trimString := func(key string) {
		if v, ok := m[key]; ok {
			switch vv := v.(type) {
			case string:
				m[key] = strings.TrimSpace(vv)
			default:
				m[key] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
	}
	coerceQuantity := func(key string) {
		if v, ok := m[key]; ok {
			switch vv := v.(type) {
			case float64:
				// JSON numbers decode as float64
				m[key] = int(vv)
			case string:
				if n, err := json.Number(strings.TrimSpace(vv)).Int64(); err == nil {
					m[key] = int(n)
				} else {
					delete(m, key)
				}
			default:
				delete(m, key)
			}
		}
	}

	switch name {
	case tools.ToolGetProductInfo:
		trimString("product_id")
	case tools.ToolSearchProducts:
		trimString("keyword")
	case tools.ToolGetProductPricing:
		trimString("product_id")
		trimString("embroidery_type")
		coerceQuantity("quantity")
	case tools.ToolGetPatchPricing:
		trimString("patch_type")
	case tools.ToolCalculateTotalPrice:
		trimString("product_id")
		trimString("embroidery_type")
		trimString("patch_type")
		coerceQuantity("quantity")
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments, nil
	}
	return string(b), nil
}

// addNodes adds the chat model node with its state handlers.
func (b *GraphBuilder) addNodes() {
	b.graph.AddChatModelNode(nodes.NodeResponseChatModel,
		b.chatModel.Response,
		compose.WithStatePreHandler(nodes.NewResponseChatModelPreHandler(b.toolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewResponseChatModelPostHandler(b.chatModel.ModelName)),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeResponseChatModel},
		{nodes.NodeToolExecutor, nodes.NodeResponseChatModel},
	}
	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches routes model output either to tool execution or to END.
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeResponseChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	// Limit total run steps to avoid infinite loops in tool retries
	maxSteps := 10 + b.toolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	return runnable, nil
}
