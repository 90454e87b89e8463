package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SubscriberRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSubscriberRepository(mock), mock
}

func TestSubscriberRepository_Subscribe(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs(pgxmock.AnyArg(), int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "chat_id", "is_active", "created_at", "updated_at"}).
			AddRow("sub-1", int64(42), true, now, now))

	sub, err := repo.Subscribe(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), sub.ChatID)
	assert.True(t, sub.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_SubscribeError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs(pgxmock.AnyArg(), int64(42)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Subscribe(context.Background(), 42)

	assert.Error(t, err)
}

func TestSubscriberRepository_Unsubscribe(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE subscribers").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Unsubscribe(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_ListActive(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, chat_id, is_active, created_at, updated_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "chat_id", "is_active", "created_at", "updated_at"}).
			AddRow("sub-1", int64(42), true, now, now).
			AddRow("sub-2", int64(99), true, now, now))

	subs, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(42), subs[0].ChatID)
	assert.Equal(t, int64(99), subs[1].ChatID)
}

func TestSubscriberRepository_ListActiveEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, chat_id, is_active, created_at, updated_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "chat_id", "is_active", "created_at", "updated_at"}))

	subs, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	assert.Empty(t, subs)
}
