package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateRepository is the durable per-user key/value state the client owns
// locally (session keys, onboarding flag, language). Get returns ("", nil)
// for an absent key so callers can treat absence and emptiness alike.
type StateRepository interface {
	Get(ctx context.Context, telegramID int64, key string) (string, error)
	Set(ctx context.Context, telegramID int64, key, value string) error
	Delete(ctx context.Context, telegramID int64, keys ...string) error
}

type PostgresStateRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStateRepository(db *pgxpool.Pool) *PostgresStateRepository {
	return &PostgresStateRepository{db: db}
}

func (r *PostgresStateRepository) Get(ctx context.Context, telegramID int64, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT value FROM user_state WHERE telegram_id = $1 AND key = $2`,
		telegramID, key,
	).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *PostgresStateRepository) Set(ctx context.Context, telegramID int64, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_state (telegram_id, key, value, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (telegram_id, key) DO UPDATE SET value = excluded.value, updated_at = now()
	`, telegramID, key, value)
	if err != nil {
		return fmt.Errorf("set state[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresStateRepository) Delete(ctx context.Context, telegramID int64, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_state WHERE telegram_id = $1 AND key = ANY($2)`,
		telegramID, keys,
	)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}
