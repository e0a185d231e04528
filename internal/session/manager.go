package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

// Manager turns cookie tokens into session state and back.
type Manager struct {
	store  model.SessionStore
	tokens model.TokenManager
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

func NewManager(store model.SessionStore, tokens model.TokenManager, ttl time.Duration, logger *logger.Logger) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// TTL is the sliding lifetime of a session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load resolves the session behind token. A missing, forged or expired token
// yields a fresh unsaved session with a new id.
func (m *Manager) Load(ctx context.Context, token string) (model.SessionState, error) {
	if token == "" {
		return m.fresh(), nil
	}

	id, err := m.tokens.ParseSessionToken(token)
	if err != nil {
		m.logger.Debug("Session manager: rejected session token",
			"error", err.Error())
		return m.fresh(), nil
	}

	state, err := m.store.Get(ctx, id, m.now())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return m.fresh(), nil
		}
		m.logger.Error("Session manager: failed to load session",
			"session_id", id.String(),
			"error", err.Error())
		return model.SessionState{}, fmt.Errorf("failed to load session: %w", err)
	}

	return state, nil
}

// Commit persists after when it differs from before or is close to expiry and
// returns the saved state with a freshly signed token. The token is empty when
// nothing was written. The id is rotated when the stored identity changes.
func (m *Manager) Commit(ctx context.Context, before, after model.SessionState) (model.SessionState, string, error) {
	now := m.now()

	if after.Empty() {
		if !before.Empty() {
			if err := m.store.Destroy(ctx, before.ID); err != nil {
				return model.SessionState{}, "", fmt.Errorf("failed to drop empty session: %w", err)
			}
		}
		return after, "", nil
	}

	rotate := !before.Empty() && (before.UserID != after.UserID || before.Username != after.Username)
	changed := !after.SameContent(before) || after.ID != before.ID
	stale := after.ExpiresAt.Sub(now) < m.ttl/2
	if !changed && !rotate && !stale {
		return after, "", nil
	}

	if rotate {
		if err := m.store.Destroy(ctx, before.ID); err != nil {
			return model.SessionState{}, "", fmt.Errorf("failed to rotate session: %w", err)
		}
		after.ID = uuid.New()
		m.logger.Debug("Session manager: session id rotated",
			"user_id", after.UserID.String())
	}
	if after.ID == uuid.Nil {
		after.ID = uuid.New()
	}
	after.ExpiresAt = now.Add(m.ttl)

	if err := m.store.Save(ctx, after); err != nil {
		m.logger.Error("Session manager: failed to save session",
			"session_id", after.ID.String(),
			"error", err.Error())
		return model.SessionState{}, "", fmt.Errorf("failed to save session: %w", err)
	}

	token, err := m.tokens.GenerateSessionToken(after.ID, after.ExpiresAt)
	if err != nil {
		return model.SessionState{}, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return after, token, nil
}

// Destroy removes the whole session record.
func (m *Manager) Destroy(ctx context.Context, state model.SessionState) error {
	if state.Empty() {
		return nil
	}

	if err := m.store.Destroy(ctx, state.ID); err != nil {
		m.logger.Error("Session manager: failed to destroy session",
			"session_id", state.ID.String(),
			"error", err.Error())
		return apperror.NewSession("An error occurred while logging out.", err)
	}

	return nil
}

// Sweep deletes expired sessions and reports how many were removed.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return n, nil
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := m.Sweep(ctx)
			if err != nil {
				m.logger.Warn("Session manager: sweep failed",
					"error", err.Error())
				continue
			}
			if n > 0 {
				m.logger.Info("Session manager: expired sessions removed",
					"count", n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Manager) fresh() model.SessionState {
	return model.SessionState{ID: uuid.New()}
}
