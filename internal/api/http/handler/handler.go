// Package handler implements the HTTP endpoints on top of the services.
package handler

import (
	"context"
	"io"

	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/service"
	"github.com/dtroode/profile-server/internal/session"
	"github.com/dtroode/profile-server/web"
)

var (
	_ AuthService      = (*service.Auth)(nil)
	_ ProfileService   = (*service.Profile)(nil)
	_ SessionDestroyer = (*session.Manager)(nil)
	_ Renderer         = (*web.Views)(nil)
)

// AuthService is the registration, verification and login flow.
type AuthService interface {
	Register(ctx context.Context, sess model.SessionState, params model.RegisterParams) (model.SessionState, model.Step, error)
	Verify(ctx context.Context, sess model.SessionState, code string) (model.SessionState, model.Step, error)
	Login(ctx context.Context, sess model.SessionState, username, password string) (model.SessionState, model.Step, error)
}

// ProfileService reads profiles and manages their images.
type ProfileService interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	CurrentUser(ctx context.Context, sess model.SessionState) (model.User, error)
	AttachImage(ctx context.Context, sess model.SessionState, kind model.ImageKind, file model.UploadedFile) (model.User, error)
	RemoveImage(ctx context.Context, sess model.SessionState, kind model.ImageKind) (model.User, error)
	OpenImage(ctx context.Context, kind model.ImageKind, name string) (model.Object, error)
}

// SessionDestroyer removes a session record.
type SessionDestroyer interface {
	Destroy(ctx context.Context, state model.SessionState) error
}

// Renderer writes a named server-side view.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// PageData is passed to every view. User is the profile the page is about;
// Viewer is the logged-in username, empty for anonymous clients.
type PageData struct {
	User   *model.User
	Viewer string
	// Owner is set when the viewer is looking at their own profile.
	Owner bool
}

// Client-facing destinations.
const (
	PathIndex        = "/index.html"
	PathLogin        = "/login.html"
	PathVerify       = "/verify.html"
	PathSuccess      = "/success.html"
	PathUploadPrompt = "/upload-prompt"
)

// ProfilePath is the profile page of username.
func ProfilePath(username string) string {
	return "/users/" + username
}
