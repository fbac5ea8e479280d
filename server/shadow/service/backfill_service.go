package service

import (
	"context"
	"fmt"
	"time"

	"museai_server/server/common/log"
	"museai_server/server/shadow/domain"
	"museai_server/server/shadow/llm"
)

// EmbeddingStore is the slice of the item repository the backfill needs.
type EmbeddingStore interface {
	ListMissingEmbeddings(ctx context.Context) ([]domain.MuseItem, error)
	UpdateEmbedding(ctx context.Context, itemID string, embedding []float32) error
}

// BackfillService walks items with a null embedding, computes and writes
// embeddings, pacing itself between calls to respect upstream rate limits.
// A single item's failure is logged and does not abort the run.
type BackfillService struct {
	items    EmbeddingStore
	embedder llm.Embedder
	delay    time.Duration
}

func NewBackfillService(items EmbeddingStore, embedder llm.Embedder, delay time.Duration) *BackfillService {
	return &BackfillService{items: items, embedder: embedder, delay: delay}
}

// Run processes every pending item once and reports how many succeeded and
// failed. Only the initial listing can fail the run as a whole.
func (s *BackfillService) Run(ctx context.Context) (processed, failed int, err error) {
	items, err := s.items.ListMissingEmbeddings(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch items to backfill: %w", err)
	}
	if len(items) == 0 {
		log.Infof("backfill: no items to process")
		return 0, 0, nil
	}
	log.Infof("backfill: found %d items to process", len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return processed, failed, err
		}

		text := fmt.Sprintf("Content: %s\n\nDescription: %s", item.Content, item.Description)
		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			failed++
			log.Errorf("backfill: embed item %s (%d/%d): %v", item.ID, i+1, len(items), err)
			continue
		}
		if err := s.items.UpdateEmbedding(ctx, item.ID, embedding); err != nil {
			failed++
			log.Errorf("backfill: update item %s (%d/%d): %v", item.ID, i+1, len(items), err)
			continue
		}
		processed++
		log.Infof("backfill: item %s done (%d/%d)", item.ID, i+1, len(items))

		if s.delay > 0 && i < len(items)-1 {
			time.Sleep(s.delay)
		}
	}
	return processed, failed, nil
}
