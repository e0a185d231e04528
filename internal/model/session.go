package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists per-client session state keyed by session id.
type SessionStore interface {
	// Get returns ErrNotFound when the session is absent or expired at now.
	Get(ctx context.Context, id uuid.UUID, now time.Time) (SessionState, error)
	Save(ctx context.Context, state SessionState) error
	Destroy(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionState is the server-side state of one client session. It is passed
// into and returned from every service operation instead of being mutated in place.
type SessionState struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	// PendingCode is the verification code awaiting confirmation, zero when none.
	PendingCode int
	ExpiresAt   time.Time
}

// Authenticated reports whether the session carries a full login identity.
func (s SessionState) Authenticated() bool {
	return s.UserID != uuid.Nil && s.Username != ""
}

// HasPendingCode reports whether a verification code is waiting.
func (s SessionState) HasPendingCode() bool {
	return s.PendingCode != 0
}

// Empty reports whether the session holds nothing worth persisting.
func (s SessionState) Empty() bool {
	return s.UserID == uuid.Nil && s.Username == "" && s.PendingCode == 0
}

// SameContent compares everything but the id and expiry.
func (s SessionState) SameContent(other SessionState) bool {
	return s.UserID == other.UserID && s.Username == other.Username && s.PendingCode == other.PendingCode
}

// Step tells the transport layer where the client goes after an operation.
type Step int

const (
	StepNone Step = iota
	// StepVerify asks the client to submit the emailed code.
	StepVerify
	// StepVerified confirms a successful code check.
	StepVerified
	// StepUploadPrompt asks a freshly logged-in user to upload a profile picture.
	StepUploadPrompt
	// StepProfile sends the user to their profile page.
	StepProfile
)
