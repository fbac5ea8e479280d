package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"museai_server/server/shadow/domain"
)

// MuseItemRepository reads and backfills muse_items. Similarity search is
// delegated to the match_muse_items database function, which also enforces
// the owner filter and the minimum-similarity cutoff.
type MuseItemRepository struct {
	pool *pgxpool.Pool
}

func NewMuseItemRepository(pool *pgxpool.Pool) *MuseItemRepository {
	return &MuseItemRepository{pool: pool}
}

// MatchItems returns the caller's items scoring at or above threshold,
// ordered by descending similarity, at most limit rows. No matches is an
// empty slice, not an error.
func (r *MuseItemRepository) MatchItems(ctx context.Context, queryVector []float32, userID string, threshold float64, limit int) ([]domain.RetrievedItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, content, content_type,
		       COALESCE(description, ''), COALESCE(ai_categories, '{}'),
		       created_at, similarity
		FROM match_muse_items($1, $2, $3, $4)
	`, pgvector.NewVector(queryVector), threshold, limit, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: match_muse_items: %v", domain.ErrUpstream, err)
	}
	defer rows.Close()

	items := make([]domain.RetrievedItem, 0, limit)
	for rows.Next() {
		var it domain.RetrievedItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Content, &it.ContentType,
			&it.Description, &it.AICategories, &it.CreatedAt, &it.Similarity,
		); err != nil {
			return nil, fmt.Errorf("%w: scan matched item: %v", domain.ErrUpstream, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read matched items: %v", domain.ErrUpstream, err)
	}
	return items, nil
}

// ListMissingEmbeddings returns every item whose embedding is still null.
// Only the fields the backfill embeds are selected.
func (r *MuseItemRepository) ListMissingEmbeddings(ctx context.Context) ([]domain.MuseItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, COALESCE(description, '')
		FROM muse_items
		WHERE embedding IS NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("list items missing embeddings: %w", err)
	}
	defer rows.Close()

	var items []domain.MuseItem
	for rows.Next() {
		var it domain.MuseItem
		if err := rows.Scan(&it.ID, &it.Content, &it.Description); err != nil {
			return nil, fmt.Errorf("scan item missing embedding: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateEmbedding writes a computed embedding, the only mutation muse_items
// sees from this service.
func (r *MuseItemRepository) UpdateEmbedding(ctx context.Context, itemID string, embedding []float32) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE muse_items SET embedding = $2 WHERE id = $1
	`, itemID, pgvector.NewVector(embedding))
	return err
}
