package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository keeps sessions in the sessions table so they survive restarts
// and are shared between instances.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID, now time.Time) (model.SessionState, error) {
	query := `SELECT id, user_id, username, pending_code, expires_at
			  FROM sessions WHERE id = $1 AND expires_at > $2`

	var (
		state    model.SessionState
		userID   uuid.NullUUID
		username sql.NullString
		code     sql.NullInt32
	)
	err := r.db.QueryRowContext(ctx, query, id, now).Scan(&state.ID, &userID, &username, &code, &state.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SessionState{}, model.ErrNotFound
		}
		return model.SessionState{}, fmt.Errorf("failed to get session: %w", err)
	}

	state.UserID = userID.UUID
	state.Username = username.String
	state.PendingCode = int(code.Int32)

	return state, nil
}

func (r *SessionRepository) Save(ctx context.Context, state model.SessionState) error {
	query := `INSERT INTO sessions (id, user_id, username, pending_code, expires_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  ON CONFLICT (id) DO UPDATE SET
			      user_id = EXCLUDED.user_id,
			      username = EXCLUDED.username,
			      pending_code = EXCLUDED.pending_code,
			      expires_at = EXCLUDED.expires_at,
			      updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		state.ID,
		uuid.NullUUID{UUID: state.UserID, Valid: state.UserID != uuid.Nil},
		sql.NullString{String: state.Username, Valid: state.Username != ""},
		sql.NullInt32{Int32: int32(state.PendingCode), Valid: state.PendingCode != 0},
		state.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *SessionRepository) Destroy(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}

	return n, nil
}
