package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"

	"museai_server/server/common/infra/db"
	"museai_server/server/shadow/app"
	"museai_server/server/shadow/llm"
	"museai_server/server/shadow/repository"
	"museai_server/server/shadow/service"
)

// Offline backfill: embed every muse_item whose embedding is still null.
// Runs once and exits; safe to re-run at any time.
func main() {
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("initialize postgres: %v", err)
	}
	defer pool.Close()

	openaiClient := openai.NewClient()
	embedder := llm.NewOpenAIEmbedder(&openaiClient, cfg.EmbedModel)
	items := repository.NewMuseItemRepository(pool)

	backfill := service.NewBackfillService(items, embedder, cfg.BackfillDelay)
	processed, failed, err := backfill.Run(ctx)
	if err != nil {
		log.Fatalf("run backfill: %v", err)
	}
	log.Printf("backfill completed: %d processed, %d failed", processed, failed)
}
