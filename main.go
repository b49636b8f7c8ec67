package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/nexusflow-ai/server/internal/agent"
	"github.com/nexusflow-ai/server/internal/agent/conversations"
	"github.com/nexusflow-ai/server/internal/agent/graph"
	"github.com/nexusflow-ai/server/internal/agent/model"
	"github.com/nexusflow-ai/server/internal/agent/repo"
	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/nexusflow-ai/server/internal/core"
	"github.com/nexusflow-ai/server/internal/httpserver"
	logx "github.com/nexusflow-ai/server/pkg/logger"
	pkgredis "github.com/nexusflow-ai/server/pkg/redis"
)

type AppConfig struct {
	Redis        pkgredis.Config `envconfig:"REDIS"`
	APIKey       string          `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL      string          `envconfig:"GEMINI_BASE_URL"`
	Response     model.ResponseModelConfig
	Prompt       model.AssistantPromptConfig
	Conversation model.ConversationConfig
	Server       model.ServerConfig
}

func main() {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Server.Environment),
		Service:     "catalog-assistant",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Conversation.TTL).Msg("invalid conversation TTL")
	}
	readTimeout := time.Duration(cfg.Conversation.Context.ReadTimeoutMS) * time.Millisecond

	cat := catalog.MustLoadEmbedded()
	logx.Info().Int("products", len(cat.All())).Msg("product catalog loaded")

	store := repo.NewRedisConversationStore(rdb, ttl, readTimeout)
	assembler := conversations.NewAssembler(store, cfg.Conversation)

	runner, err := graph.BuildAgentGraph(ctx, graph.Config{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		ResponseModel: cfg.Response,
		ToolMaxCalls:  cfg.Conversation.Tools.MaxCalls,
		Catalog:       cat,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build agent graph")
	}

	assistant := agent.NewAssistant(store, assembler, runner, cfg.Prompt)

	server := httpserver.New(cfg.Server, logx.With("httpserver"), assistant)
	if err := server.Run(ctx); err != nil {
		logx.Fatal().Err(err).Msg("HTTP server failed")
	}

	logx.Info().Msg("shutdown complete")
}
