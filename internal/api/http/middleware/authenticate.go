package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/logger"
)

// LoginPage is where unauthenticated clients are sent.
const LoginPage = "/login.html"

// Authenticate redirects clients without a session identity to the login page.
type Authenticate struct {
	contexts *httpctx.Manager
	logger   *logger.Logger
}

func NewAuthenticate(contexts *httpctx.Manager, logger *logger.Logger) *Authenticate {
	return &Authenticate{contexts: contexts, logger: logger}
}

// RequireLogin needs both the user id and the username in the session.
func (a *Authenticate) RequireLogin(c *fiber.Ctx) error {
	state, _ := a.contexts.GetSession(c)
	if !state.Authenticated() {
		a.logger.Debug("Authenticate middleware: no login identity, redirecting",
			"path", c.Path())
		return c.Redirect(LoginPage, fiber.StatusFound)
	}
	return c.Next()
}

// RequireUserID only needs the user id, which registration already sets.
func (a *Authenticate) RequireUserID(c *fiber.Ctx) error {
	state, _ := a.contexts.GetSession(c)
	if state.UserID == uuid.Nil {
		a.logger.Debug("Authenticate middleware: no user id, redirecting",
			"path", c.Path())
		return c.Redirect(LoginPage, fiber.StatusFound)
	}
	return c.Next()
}
