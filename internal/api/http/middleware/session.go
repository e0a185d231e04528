package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

// SessionManager loads and persists session state around a request.
type SessionManager interface {
	Load(ctx context.Context, token string) (model.SessionState, error)
	Commit(ctx context.Context, before, after model.SessionState) (model.SessionState, string, error)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Session loads the session named by the cookie before the handler runs and
// commits whatever state the handler left behind.
type Session struct {
	manager  SessionManager
	contexts *httpctx.Manager
	cookie   CookieConfig
	logger   *logger.Logger
}

func NewSession(manager SessionManager, contexts *httpctx.Manager, cookie CookieConfig, logger *logger.Logger) *Session {
	return &Session{
		manager:  manager,
		contexts: contexts,
		cookie:   cookie,
		logger:   logger,
	}
}

func (s *Session) Handle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	before, err := s.manager.Load(ctx, c.Cookies(s.cookie.Name))
	if err != nil {
		return err
	}
	s.contexts.SetSession(c, before)

	handlerErr := c.Next()

	if s.contexts.Destroyed(c) {
		s.clearCookie(c)
		return handlerErr
	}

	after, _ := s.contexts.GetSession(c)
	saved, token, err := s.manager.Commit(ctx, before, after)
	if err != nil {
		s.logger.Error("Session middleware: failed to commit session",
			"path", c.Path(),
			"error", err.Error())
		if handlerErr != nil {
			return handlerErr
		}
		return err
	}
	if token != "" {
		s.setCookie(c, token, saved.ExpiresAt)
	}

	return handlerErr
}

func (s *Session) setCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		Secure:   s.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Session) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
