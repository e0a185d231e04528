package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/mocks"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/testutil"
)

func newAuthApp(t *testing.T, sess *testSession, service AuthService, destroyer SessionDestroyer) *fiber.App {
	contexts := httpctx.NewManager()
	app := newTestApp(t, sess, contexts)
	h := NewAuth(service, destroyer, contexts, testutil.MakeNoopLogger())

	app.Post("/register", h.Register)
	app.Post("/verify", h.Verify)
	app.Post("/login", h.Login)
	app.Get("/login", h.LoginPage)
	app.Get("/logout", h.Logout)
	return app
}

func TestAuth_Register(t *testing.T) {
	t.Run("redirects to verification and stores session", func(t *testing.T) {
		service := mocks.NewAuthService(t)
		sess := &testSession{state: model.SessionState{ID: uuid.New()}}
		userID := uuid.New()

		service.On("Register", mock.Anything, sess.state, model.RegisterParams{
			Username:        "alice",
			Email:           "alice@x.com",
			Password:        "pw123",
			ConfirmPassword: "pw123",
		}).Return(func(_ context.Context, s model.SessionState, _ model.RegisterParams) (model.SessionState, model.Step, error) {
			s.UserID = userID
			s.PendingCode = 123456
			return s, model.StepVerify, nil
		})

		app := newAuthApp(t, sess, service, &fakeDestroyer{})
		resp, _ := do(t, app, formRequest("/register", url.Values{
			"username":        {"alice"},
			"email":           {"alice@x.com"},
			"password":        {"pw123"},
			"confirmPassword": {"pw123"},
		}))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, PathVerify, resp.Header.Get(fiber.HeaderLocation))
		assert.Equal(t, userID, sess.state.UserID)
		assert.Equal(t, 123456, sess.state.PendingCode)
	})

	t.Run("conflict", func(t *testing.T) {
		service := mocks.NewAuthService(t)
		sess := &testSession{state: model.SessionState{ID: uuid.New()}}
		service.On("Register", mock.Anything, mock.Anything, mock.Anything).
			Return(sess.state, model.StepNone, apperror.NewConflict())

		app := newAuthApp(t, sess, service, &fakeDestroyer{})
		resp, body := do(t, app, formRequest("/register", url.Values{"username": {"alice"}}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Username or email is already registered.", body)
	})

	t.Run("mail failure", func(t *testing.T) {
		service := mocks.NewAuthService(t)
		sess := &testSession{state: model.SessionState{ID: uuid.New()}}
		service.On("Register", mock.Anything, mock.Anything, mock.Anything).
			Return(sess.state, model.StepNone, apperror.NewMailDispatch(errors.New("smtp down")))

		app := newAuthApp(t, sess, service, &fakeDestroyer{})
		resp, body := do(t, app, formRequest("/register", url.Values{"username": {"alice"}}))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to send verification email.", body)
		assert.False(t, sess.state.HasPendingCode())
	})
}

func TestAuth_Verify(t *testing.T) {
	tests := []struct {
		name         string
		step         model.Step
		err          error
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{
			name:         "correct code",
			step:         model.StepVerified,
			wantStatus:   http.StatusFound,
			wantLocation: PathSuccess,
		},
		{
			name:       "wrong code",
			err:        apperror.NewInvalidCode(),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid verification code.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := mocks.NewAuthService(t)
			sess := &testSession{state: model.SessionState{ID: uuid.New(), PendingCode: 654321}}
			service.On("Verify", mock.Anything, sess.state, "654321").Return(sess.state, tt.step, tt.err)

			app := newAuthApp(t, sess, service, &fakeDestroyer{})
			resp, body := do(t, app, formRequest("/verify", url.Values{"code": {"654321"}}))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get(fiber.HeaderLocation))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestAuth_Login(t *testing.T) {
	tests := []struct {
		name         string
		step         model.Step
		err          error
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "no profile picture",
			step:         model.StepUploadPrompt,
			wantStatus:   http.StatusFound,
			wantLocation: PathUploadPrompt,
		},
		{
			name:         "has profile picture",
			step:         model.StepProfile,
			wantStatus:   http.StatusFound,
			wantLocation: "/users/alice",
		},
		{
			name:       "bad credentials",
			err:        apperror.NewAuthentication("Invalid username or password."),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := mocks.NewAuthService(t)
			sess := &testSession{state: model.SessionState{ID: uuid.New()}}
			result := sess.state
			if tt.err == nil {
				result.UserID = uuid.New()
				result.Username = "alice"
			}
			service.On("Login", mock.Anything, sess.state, "alice", "pw123").Return(result, tt.step, tt.err)

			app := newAuthApp(t, sess, service, &fakeDestroyer{})
			resp, _ := do(t, app, formRequest("/login", url.Values{"username": {"alice"}, "password": {"pw123"}}))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get(fiber.HeaderLocation))
			assert.Equal(t, tt.err == nil, sess.state.Authenticated())
		})
	}
}

func TestAuth_LoginPage(t *testing.T) {
	app := newAuthApp(t, &testSession{}, mocks.NewAuthService(t), &fakeDestroyer{})

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, PathLogin, resp.Header.Get(fiber.HeaderLocation))
}

func TestAuth_Logout(t *testing.T) {
	t.Run("destroys session", func(t *testing.T) {
		destroyer := &fakeDestroyer{}
		sess := &testSession{state: loggedIn()}
		want := sess.state

		app := newAuthApp(t, sess, mocks.NewAuthService(t), destroyer)
		resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, PathIndex, resp.Header.Get(fiber.HeaderLocation))
		assert.Equal(t, []model.SessionState{want}, destroyer.destroyed)
		assert.True(t, sess.destroyed)
	})

	t.Run("already logged out", func(t *testing.T) {
		destroyer := &fakeDestroyer{}
		sess := &testSession{}

		app := newAuthApp(t, sess, mocks.NewAuthService(t), destroyer)
		resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.True(t, sess.destroyed)
	})

	t.Run("store failure", func(t *testing.T) {
		destroyer := &fakeDestroyer{err: apperror.NewSession("An error occurred while logging out.", errors.New("conn reset"))}
		sess := &testSession{state: loggedIn()}

		app := newAuthApp(t, sess, mocks.NewAuthService(t), destroyer)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An error occurred while logging out.", body)
		assert.False(t, sess.destroyed)
	})
}
