package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/web"
)

// Pages serves the upload prompt and the informational pages.
type Pages struct {
	profiles ProfileService
	sessions SessionDestroyer
	views    Renderer
	contexts *httpctx.Manager
	logger   *logger.Logger
}

func NewPages(profiles ProfileService, sessions SessionDestroyer, views Renderer, contexts *httpctx.Manager, logger *logger.Logger) *Pages {
	return &Pages{
		profiles: profiles,
		sessions: sessions,
		views:    views,
		contexts: contexts,
		logger:   logger,
	}
}

func (h *Pages) UploadPrompt(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)
	return render(c, h.views, web.PageUploadPrompt, PageData{Viewer: sess.Username})
}

// FAQ falls back to the anonymous page when the session user is gone.
func (h *Pages) FAQ(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	user, err := h.currentUser(c, sess)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		h.logger.Warn("Pages handler: failed to load user",
			"page", web.PageFAQ,
			"error", err.Error())
		return c.Redirect(PathLogin, fiber.StatusFound)
	}

	return render(c, h.views, web.PageFAQ, viewing(user))
}

// About logs out a session whose user no longer exists.
func (h *Pages) About(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	user, err := h.currentUser(c, sess)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		if err := h.sessions.Destroy(c.UserContext(), sess); err != nil {
			return err
		}
		h.contexts.MarkDestroyed(c)
		return c.Redirect("/login", fiber.StatusFound)
	case err != nil:
		return err
	}

	return render(c, h.views, web.PageAbout, viewing(user))
}

func (h *Pages) Contact(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	user, err := h.currentUser(c, sess)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return c.Redirect(PathLogin, fiber.StatusFound)
	case err != nil:
		return err
	}

	return render(c, h.views, web.PageContact, viewing(user))
}

// Health reports liveness.
func (h *Pages) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// viewing shows an informational page to user, nil when anonymous.
func viewing(user *model.User) PageData {
	if user == nil {
		return PageData{}
	}
	return PageData{User: user, Viewer: user.Username}
}

// currentUser returns nil without error for anonymous sessions.
func (h *Pages) currentUser(c *fiber.Ctx, sess model.SessionState) (*model.User, error) {
	if sess.UserID == uuid.Nil {
		return nil, nil
	}

	user, err := h.profiles.CurrentUser(c.UserContext(), sess)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
