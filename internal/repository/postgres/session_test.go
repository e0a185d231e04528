package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/profile-server/internal/model"
)

func newSessionRepoWithMock(t *testing.T) (*SessionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewSessionRepository(db), mock
}

func TestSessionRepository_Get(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	now := time.Now()
	expires := now.Add(time.Hour)

	t.Run("full session", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		rows := sqlmock.NewRows([]string{"id", "user_id", "username", "pending_code", "expires_at"}).
			AddRow(id.String(), userID.String(), "alice", int64(482913), expires)
		mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*username,\s*pending_code,\s*expires_at\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1\s+AND\s+expires_at\s*>\s*\$2$`).
			WithArgs(sqlmock.AnyArg(), now).
			WillReturnRows(rows)

		got, err := repo.Get(context.Background(), id, now)
		require.NoError(t, err)
		assert.Equal(t, model.SessionState{ID: id, UserID: userID, Username: "alice", PendingCode: 482913, ExpiresAt: expires}, got)
	})

	t.Run("anonymous session with nulls", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		rows := sqlmock.NewRows([]string{"id", "user_id", "username", "pending_code", "expires_at"}).
			AddRow(id.String(), nil, nil, nil, expires)
		mock.ExpectQuery(`FROM\s+sessions`).WillReturnRows(rows)

		got, err := repo.Get(context.Background(), id, now)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.True(t, got.Empty())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+sessions`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), id, now)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+sessions`).WillReturnError(errors.New("db down"))

		_, err := repo.Get(context.Background(), id, now)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
		assert.Contains(t, err.Error(), "failed to get session")
	})
}

func TestSessionRepository_Save(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	t.Run("authenticated", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		mock.ExpectExec(`(?s)^INSERT\s+INTO\s+sessions.*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "alice", 123456, expires).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), model.SessionState{
			ID: uuid.New(), UserID: uuid.New(), Username: "alice", PendingCode: 123456, ExpiresAt: expires,
		})
		assert.NoError(t, err)
	})

	t.Run("unset fields are stored as null", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		mock.ExpectExec(`INSERT\s+INTO\s+sessions`).
			WithArgs(sqlmock.AnyArg(), nil, nil, nil, expires).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), model.SessionState{ID: uuid.New(), ExpiresAt: expires})
		assert.NoError(t, err)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newSessionRepoWithMock(t)
		mock.ExpectExec(`INSERT\s+INTO\s+sessions`).WillReturnError(errors.New("db down"))

		err := repo.Save(context.Background(), model.SessionState{ID: uuid.New(), ExpiresAt: expires})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save session")
	})
}

func TestSessionRepository_Destroy(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)
	mock.ExpectExec(`^DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Destroy(context.Background(), uuid.New()))

	mock.ExpectExec(`DELETE\s+FROM\s+sessions`).WillReturnError(errors.New("db down"))
	err := repo.Destroy(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to destroy session")
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	now := time.Now()

	repo, mock := newSessionRepoWithMock(t)
	mock.ExpectExec(`^DELETE\s+FROM\s+sessions\s+WHERE\s+expires_at\s*<=\s*\$1$`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec(`DELETE\s+FROM\s+sessions`).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no rows info")))
	_, err = repo.DeleteExpired(context.Background(), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count deleted sessions")
}
