package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository persists Shadow conversation turns to ai_messages.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// SaveTurn writes the user/assistant pair of one exchange. Rows are immutable
// once stored.
func (r *MessageRepository) SaveTurn(ctx context.Context, conversationID, userMessage, assistantMessage string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ai_messages(id, conversation_id, role, content)
		VALUES ($1, $2, 'user', $3),
		       ($4, $2, 'assistant', $5)
	`, uuid.NewString(), conversationID, userMessage, uuid.NewString(), assistantMessage)
	return err
}
