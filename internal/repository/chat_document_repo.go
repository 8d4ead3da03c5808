package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindmate-backend/internal/models"
)

// ChatDocumentRepo is the remote document store for chat transcripts: one
// jsonb document per user, replaced wholesale on every save. It exists for
// cross-device continuity; the activity log never goes through it.
type ChatDocumentRepo struct {
	pool *pgxpool.Pool
}

func NewChatDocumentRepo(pool *pgxpool.Pool) *ChatDocumentRepo {
	return &ChatDocumentRepo{pool: pool}
}

func (r *ChatDocumentRepo) Save(ctx context.Context, userID uuid.UUID, turns []models.ChatTurn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO chat_documents (user_id, conversation, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET conversation = EXCLUDED.conversation, updated_at = NOW()
	`, userID, data)
	return err
}

func (r *ChatDocumentRepo) Load(ctx context.Context, userID uuid.UUID) ([]models.ChatTurn, bool, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		"SELECT conversation FROM chat_documents WHERE user_id = $1", userID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var turns []models.ChatTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, false, err
	}
	return turns, true, nil
}

func (r *ChatDocumentRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM chat_documents WHERE user_id = $1", userID)
	return err
}
