package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

const invalidCredentials = "Invalid username or password."

// CodeIssuer produces verification codes and mails them out.
type CodeIssuer interface {
	Generate() (int, error)
	Dispatch(ctx context.Context, to string, code int) error
}

// Auth drives registration, email verification and login. Every operation
// takes the caller's session state and returns the state to persist.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	issuer    CodeIssuer
	logger    *logger.Logger
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	issuer CodeIssuer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		issuer:    issuer,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates the account, mails a verification code and stores the code
// and the new user id in the session.
func (a *Auth) Register(ctx context.Context, sess model.SessionState, params model.RegisterParams) (model.SessionState, model.Step, error) {
	params = params.Normalize()
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	if err := params.Validate(); err != nil {
		return sess, model.StepNone, err
	}

	_, err := a.userStore.FindByUsernameOrEmail(ctx, params.Username, params.Email)
	if err == nil {
		a.logger.Info("Auth service: username or email already registered",
			"username", params.Username)
		return sess, model.StepNone, apperror.NewConflict()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to look up existing user",
			"username", params.Username,
			"error", err.Error())
		return sess, model.StepNone, fmt.Errorf("failed to look up existing user: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return sess, model.StepNone, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			a.logger.Info("Auth service: concurrent registration lost the race",
				"username", params.Username)
			return sess, model.StepNone, apperror.NewConflict()
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return sess, model.StepNone, apperror.NewPersistence("Failed to create user.", err)
	}

	code, err := a.issuer.Generate()
	if err != nil {
		return sess, model.StepNone, err
	}

	if err := a.issuer.Dispatch(ctx, user.Email, code); err != nil {
		// the account stays; the user can log in without verifying
		a.logger.Warn("Auth service: verification email not sent, user kept",
			"user_id", user.ID.String(),
			"error", err.Error())
		return sess, model.StepNone, apperror.NewMailDispatch(err)
	}

	sess.PendingCode = code
	sess.UserID = user.ID
	// a previous login must not pair its username with the new id
	sess.Username = ""

	a.logger.Info("Auth service: user registered, verification pending",
		"user_id", user.ID.String(),
		"username", user.Username)

	return sess, model.StepVerify, nil
}

// Verify checks the submitted code against the pending one. The input is
// trimmed and compared as a base-10 number. A matching code is consumed.
func (a *Auth) Verify(ctx context.Context, sess model.SessionState, code string) (model.SessionState, model.Step, error) {
	if !sess.HasPendingCode() {
		a.logger.Debug("Auth service: verification without pending code")
		return sess, model.StepNone, apperror.NewInvalidCode()
	}

	submitted, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || submitted != sess.PendingCode {
		a.logger.Info("Auth service: verification code mismatch",
			"user_id", sess.UserID.String())
		return sess, model.StepNone, apperror.NewInvalidCode()
	}

	sess.PendingCode = 0

	a.logger.Info("Auth service: email verified",
		"user_id", sess.UserID.String())

	return sess, model.StepVerified, nil
}

// Login checks credentials and stores the user's identity in the session.
// Unknown usernames and wrong passwords fail identically.
func (a *Auth) Login(ctx context.Context, sess model.SessionState, username, password string) (model.SessionState, model.Step, error) {
	username = strings.TrimSpace(username)
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	if username == "" || password == "" {
		return sess, model.StepNone, apperror.NewAuthentication(invalidCredentials)
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth service: failed to get user by username",
				"username", username,
				"error", err.Error())
			return sess, model.StepNone, fmt.Errorf("failed to get user by username: %w", err)
		}
		// equalize timing with the wrong-password path
		_, _ = a.hasher.Compare(a.dummy(), password)
		a.logger.Info("Auth service: login failed",
			"username", username)
		return sess, model.StepNone, apperror.NewAuthentication(invalidCredentials)
	}

	ok, err := a.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return sess, model.StepNone, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: login failed",
			"username", username)
		return sess, model.StepNone, apperror.NewAuthentication(invalidCredentials)
	}

	sess.UserID = user.ID
	sess.Username = user.Username

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID.String(),
		"username", user.Username)

	if user.ProfileImageRef == "" {
		return sess, model.StepUploadPrompt, nil
	}
	return sess, model.StepProfile, nil
}

func (a *Auth) dummy() []byte {
	a.dummyOnce.Do(func() {
		hash, err := a.hasher.Hash("profile-server-timing-dummy")
		if err != nil {
			a.logger.Warn("Auth service: failed to build dummy hash",
				"error", err.Error())
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}
