package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/mocks"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/testutil"
)

func newProfileApp(t *testing.T, sess *testSession, service ProfileService) *fiber.App {
	contexts := httpctx.NewManager()
	app := newTestApp(t, sess, contexts)
	h := NewProfile(service, newViews(t), contexts, testutil.MakeNoopLogger())

	app.Get("/users/:username", h.UserPage)
	app.Get("/users/:username/text", h.UserTextPage)
	app.Post("/upload-profile-pic", h.Upload(model.ImageProfile))
	app.Post("/upload-banner-image", h.Upload(model.ImageBanner))
	app.Get("/remove-profile-pic", h.Remove(model.ImageProfile))
	app.Get("/remove-banner-image", h.Remove(model.ImageBanner))
	app.Get("/uploads/:name", h.Image(model.ImageProfile))
	app.Get("/bannerUploads/:name", h.Image(model.ImageBanner))
	return app
}

func TestProfile_UserPage(t *testing.T) {
	t.Run("renders user", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("GetByUsername", mock.Anything, "bob").Return(model.User{
			Username:        "bob",
			ProfileImageRef: "/uploads/profilePic-1.png",
		}, nil)

		app := newProfileApp(t, &testSession{state: loggedIn()}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/users/bob", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
		assert.Contains(t, body, "<h1>bob</h1>")
		assert.Contains(t, body, `src="/uploads/profilePic-1.png"`)
		assert.Contains(t, body, `<a href="/users/alice">alice</a>`, "nav shows the viewer")
		assert.NotContains(t, body, "/upload-profile-pic", "visitors get no image controls")
		assert.NotContains(t, body, "/remove-profile-pic")
	})

	t.Run("owner gets image controls", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("GetByUsername", mock.Anything, "alice").Return(model.User{
			Username:       "alice",
			BannerImageRef: "/bannerUploads/bannerImage-1.png",
		}, nil)

		app := newProfileApp(t, &testSession{state: loggedIn()}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/users/alice", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `action="/upload-profile-pic"`)
		assert.Contains(t, body, `action="/upload-banner-image"`)
		assert.Contains(t, body, `href="/remove-banner-image"`)
	})

	t.Run("text page", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("GetByUsername", mock.Anything, "bob").Return(model.User{Username: "bob", Email: "bob@x.com"}, nil)

		app := newProfileApp(t, &testSession{}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/users/bob/text", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "bob")
	})

	t.Run("unknown user", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, apperror.NewNotFound("User not found"))

		app := newProfileApp(t, &testSession{state: loggedIn()}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/users/ghost", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", body)
	})
}

func TestProfile_Upload(t *testing.T) {
	t.Run("profile picture", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		sess := &testSession{state: loggedIn()}

		service.On("AttachImage", mock.Anything, sess.state, model.ImageProfile, mock.MatchedBy(func(f model.UploadedFile) bool {
			content, err := io.ReadAll(f.Content)
			return err == nil && f.Filename == "me.png" && f.ContentType == "image/png" &&
				f.Size == 4 && string(content) == "\x89PNG"
		})).Return(model.User{Username: "alice", ProfileImageRef: "/uploads/profilePic-1.png"}, nil)

		app := newProfileApp(t, sess, service)
		resp, _ := do(t, app, multipartRequest(t, "/upload-profile-pic", "profilePic", "me.png", "image/png", []byte("\x89PNG")))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/users/alice", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run("banner uses its own field", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		sess := &testSession{state: loggedIn()}
		service.On("AttachImage", mock.Anything, sess.state, model.ImageBanner, mock.Anything).
			Return(model.User{Username: "alice"}, nil)

		app := newProfileApp(t, sess, service)
		resp, _ := do(t, app, multipartRequest(t, "/upload-banner-image", "bannerImage", "wide.jpg", "image/jpeg", []byte("jpg")))

		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("missing file", func(t *testing.T) {
		app := newProfileApp(t, &testSession{state: loggedIn()}, mocks.NewProfileService(t))
		resp, body := do(t, app, multipartRequest(t, "/upload-profile-pic", "", "", "", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No file uploaded.", body)
	})

	t.Run("wrong field", func(t *testing.T) {
		app := newProfileApp(t, &testSession{state: loggedIn()}, mocks.NewProfileService(t))
		resp, _ := do(t, app, multipartRequest(t, "/upload-profile-pic", "bannerImage", "a.png", "image/png", []byte("x")))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not logged in", func(t *testing.T) {
		app := newProfileApp(t, &testSession{}, mocks.NewProfileService(t))
		resp, body := do(t, app, multipartRequest(t, "/upload-profile-pic", "profilePic", "a.png", "image/png", []byte("x")))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "You must be logged in.", body)
	})

	t.Run("not logged in and no file", func(t *testing.T) {
		app := newProfileApp(t, &testSession{}, mocks.NewProfileService(t))

		for _, path := range []string{"/upload-profile-pic", "/upload-banner-image"} {
			resp, body := do(t, app, multipartRequest(t, path, "", "", "", nil))

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
			assert.Equal(t, "You must be logged in.", body, path)
		}
	})
}

func TestProfile_Remove(t *testing.T) {
	service := mocks.NewProfileService(t)
	sess := &testSession{state: loggedIn()}
	service.On("RemoveImage", mock.Anything, sess.state, model.ImageBanner).Return(model.User{Username: "alice"}, nil)
	service.On("RemoveImage", mock.Anything, sess.state, model.ImageProfile).
		Return(model.User{}, apperror.NewPersistence("Failed to update profile.", errors.New("timeout")))

	app := newProfileApp(t, sess, service)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/remove-banner-image", nil))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/alice", resp.Header.Get(fiber.HeaderLocation))

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/remove-profile-pic", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to update profile.", body)
}

func TestProfile_Image(t *testing.T) {
	t.Run("streams object", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("OpenImage", mock.Anything, model.ImageBanner, "bannerImage-1.png").Return(model.Object{
			Body:        io.NopCloser(strings.NewReader("pixels")),
			ContentType: "image/png",
			Size:        6,
		}, nil)

		app := newProfileApp(t, &testSession{}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/bannerUploads/bannerImage-1.png", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, "pixels", body)
	})

	t.Run("missing object", func(t *testing.T) {
		service := mocks.NewProfileService(t)
		service.On("OpenImage", mock.Anything, model.ImageProfile, "nope.png").
			Return(model.Object{}, apperror.NewNotFound("Image not found"))

		app := newProfileApp(t, &testSession{}, service)
		resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/uploads/nope.png", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Image not found", body)
	})
}
