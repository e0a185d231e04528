package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/testutil"
	"github.com/dtroode/profile-server/web"
)

// testSession stands in for the session middleware: it seeds the request with
// state and captures what the handler left behind.
type testSession struct {
	state     model.SessionState
	destroyed bool
}

func newTestApp(t *testing.T, sess *testSession, contexts *httpctx.Manager) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(testutil.MakeNoopLogger()),
	})
	app.Use(func(c *fiber.Ctx) error {
		contexts.SetSession(c, sess.state)
		err := c.Next()
		sess.state, _ = contexts.GetSession(c)
		sess.destroyed = contexts.Destroyed(c)
		return err
	})
	return app
}

func newViews(t *testing.T) *web.Views {
	t.Helper()

	views, err := web.NewViews()
	require.NoError(t, err)
	return views
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func multipartRequest(t *testing.T, path, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

type fakeDestroyer struct {
	destroyed []model.SessionState
	err       error
}

func (d *fakeDestroyer) Destroy(_ context.Context, state model.SessionState) error {
	if d.err != nil {
		return d.err
	}
	d.destroyed = append(d.destroyed, state)
	return nil
}

func loggedIn() model.SessionState {
	return model.SessionState{ID: uuid.New(), UserID: uuid.New(), Username: "alice"}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown error",
			err:        errors.New("db exploded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error.",
		},
		{
			name:       "fiber error",
			err:        fiber.NewError(http.StatusTooManyRequests, "slow down"),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testutil.MakeNoopLogger())})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, body)
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")
		})
	}
}
