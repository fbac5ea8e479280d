package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openai/openai-go"

	"museai_server/server/common/infra/db"
	"museai_server/server/shadow/api"
	"museai_server/server/shadow/llm"
	"museai_server/server/shadow/repository"
	"museai_server/server/shadow/service"
)

type Server struct {
	HTTPServer *http.Server
	DB         *pgxpool.Pool
}

// NewServer constructs every client once and hands them into the
// orchestrators; nothing performs global lookups at request time.
func NewServer(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres: %w", err)
	}

	openaiClient := openai.NewClient()
	embedder := llm.NewOpenAIEmbedder(&openaiClient, cfg.EmbedModel)

	completer, err := newCompleter(cfg, &openaiClient)
	if err != nil {
		pool.Close()
		return nil, err
	}
	generator := llm.NewGenerator(completer)

	itemRepo := repository.NewMuseItemRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	shadowSvc := service.NewShadowService(generator, messageRepo, cfg.PersistChat)
	searchSvc := service.NewSearchService(embedder, generator, itemRepo,
		cfg.MatchThreshold, cfg.MatchCount, cfg.ContextCharBudget)
	onboardingSvc := service.NewOnboardingService(generator)

	h := api.NewHandler(shadowSvc, searchSvc, onboardingSvc)
	r := gin.Default()
	h.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{HTTPServer: httpServer, DB: pool}, nil
}

func newCompleter(cfg Config, openaiClient *openai.Client) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		return llm.NewOpenAICompleter(openaiClient, func(o *llm.OpenAIOptions) {
			if cfg.LLMModel != "" {
				o.Model = cfg.LLMModel
			}
		}), nil
	case "anthropic":
		client := anthropic.NewClient()
		return llm.NewAnthropicCompleter(&client, func(o *llm.AnthropicOptions) {
			if cfg.LLMModel != "" {
				o.Model = anthropic.Model(cfg.LLMModel)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.DB != nil {
		s.DB.Close()
	}
	return s.HTTPServer.Shutdown(ctx)
}
