package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Subscriber is a chat registered to receive scheduled reports.
type Subscriber struct {
	ID        string    `json:"id" db:"id"`
	ChatID    int64     `json:"chat_id" db:"chat_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DatabasePool defines the interface for database pool operations.
// This interface allows for both real pool and mock pool implementations.
type DatabasePool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// SubscriberRepository handles database operations for report subscribers.
type SubscriberRepository struct {
	pool DatabasePool
}

// NewSubscriberRepository creates a new subscriber repository.
func NewSubscriberRepository(pool DatabasePool) *SubscriberRepository {
	return &SubscriberRepository{
		pool: pool,
	}
}

// Subscribe registers a chat for scheduled reports, reactivating it if
// it was previously stopped.
func (r *SubscriberRepository) Subscribe(ctx context.Context, chatID int64) (*Subscriber, error) {
	query := `
		INSERT INTO subscribers (id, chat_id, is_active)
		VALUES ($1, $2, true)
		ON CONFLICT (chat_id)
		DO UPDATE SET
			is_active = true,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, chat_id, is_active, created_at, updated_at
	`

	var sub Subscriber
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), chatID).Scan(
		&sub.ID,
		&sub.ChatID,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe chat: %w", err)
	}

	return &sub, nil
}

// Unsubscribe deactivates a chat without deleting its record.
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, chatID int64) error {
	query := `
		UPDATE subscribers
		SET is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE chat_id = $1 AND is_active = true
	`

	if _, err := r.pool.Exec(ctx, query, chatID); err != nil {
		return fmt.Errorf("failed to unsubscribe chat: %w", err)
	}

	return nil
}

// ListActive returns every chat currently receiving scheduled reports.
func (r *SubscriberRepository) ListActive(ctx context.Context) ([]Subscriber, error) {
	query := `
		SELECT id, chat_id, is_active, created_at, updated_at
		FROM subscribers
		WHERE is_active = true
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.ChatID, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
