package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

const notLoggedIn = "You must be logged in."

// ImageReceiver stores uploaded files and serves them back.
type ImageReceiver interface {
	Receive(ctx context.Context, kind model.ImageKind, file model.UploadedFile) (string, error)
	Open(ctx context.Context, kind model.ImageKind, name string) (model.Object, error)
	Discard(ctx context.Context, ref string) error
}

// Profile reads user profiles and manages their images.
type Profile struct {
	userStore     model.UserStore
	receiver      ImageReceiver
	pruneReplaced bool
	logger        *logger.Logger
}

// ProfileOption customizes a Profile service.
type ProfileOption func(*Profile)

// WithPruneReplaced deletes the stored object an image reference pointed to
// once the reference is replaced or cleared.
func WithPruneReplaced(prune bool) ProfileOption {
	return func(p *Profile) {
		p.pruneReplaced = prune
	}
}

func NewProfile(userStore model.UserStore, receiver ImageReceiver, logger *logger.Logger, opts ...ProfileOption) *Profile {
	p := &Profile{
		userStore: userStore,
		receiver:  receiver,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Profile) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := p.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apperror.NewNotFound("User not found")
		}
		p.logger.Error("Profile service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// CurrentUser returns the user the session belongs to.
func (p *Profile) CurrentUser(ctx context.Context, sess model.SessionState) (model.User, error) {
	if sess.UserID == uuid.Nil {
		return model.User{}, apperror.NewAuthentication(notLoggedIn)
	}

	user, err := p.userStore.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apperror.NewNotFound("User not found")
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// AttachImage stores file and points the user's image of the given kind at it,
// overwriting any previous reference.
func (p *Profile) AttachImage(ctx context.Context, sess model.SessionState, kind model.ImageKind, file model.UploadedFile) (model.User, error) {
	if sess.UserID == uuid.Nil {
		return model.User{}, apperror.NewAuthentication(notLoggedIn)
	}

	previous, err := p.previousRef(ctx, sess.UserID, kind)
	if err != nil {
		return model.User{}, err
	}

	ref, err := p.receiver.Receive(ctx, kind, file)
	if err != nil {
		p.logger.Error("Profile service: failed to receive upload",
			"user_id", sess.UserID.String(),
			"kind", string(kind),
			"error", err.Error())
		return model.User{}, err
	}

	user, err := p.userStore.SetImage(ctx, sess.UserID, kind, ref)
	if err != nil {
		return model.User{}, p.updateError(sess.UserID, kind, err)
	}

	p.logger.Info("Profile service: image attached",
		"user_id", sess.UserID.String(),
		"kind", string(kind),
		"ref", ref)

	p.prune(ctx, previous)
	return user, nil
}

// RemoveImage clears the user's image of the given kind.
func (p *Profile) RemoveImage(ctx context.Context, sess model.SessionState, kind model.ImageKind) (model.User, error) {
	if sess.UserID == uuid.Nil {
		return model.User{}, apperror.NewAuthentication(notLoggedIn)
	}

	previous, err := p.previousRef(ctx, sess.UserID, kind)
	if err != nil {
		return model.User{}, err
	}

	user, err := p.userStore.ClearImage(ctx, sess.UserID, kind)
	if err != nil {
		return model.User{}, p.updateError(sess.UserID, kind, err)
	}

	p.logger.Info("Profile service: image removed",
		"user_id", sess.UserID.String(),
		"kind", string(kind))

	p.prune(ctx, previous)
	return user, nil
}

// OpenImage streams a stored image.
func (p *Profile) OpenImage(ctx context.Context, kind model.ImageKind, name string) (model.Object, error) {
	obj, err := p.receiver.Open(ctx, kind, name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Object{}, apperror.NewNotFound("Image not found")
		}
		return model.Object{}, err
	}
	return obj, nil
}

// previousRef is only looked up when pruning is enabled.
func (p *Profile) previousRef(ctx context.Context, userID uuid.UUID, kind model.ImageKind) (string, error) {
	if !p.pruneReplaced {
		return "", nil
	}

	user, err := p.userStore.GetByID(ctx, userID)
	if err != nil {
		return "", p.updateError(userID, kind, err)
	}
	return user.ImageRef(kind), nil
}

func (p *Profile) prune(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := p.receiver.Discard(ctx, ref); err != nil {
		p.logger.Warn("Profile service: failed to prune replaced image",
			"ref", ref,
			"error", err.Error())
	}
}

func (p *Profile) updateError(userID uuid.UUID, kind model.ImageKind, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NewNotFound("User not found")
	}
	p.logger.Error("Profile service: failed to update image",
		"user_id", userID.String(),
		"kind", string(kind),
		"error", err.Error())
	return apperror.NewPersistence("Failed to update profile.", err)
}
