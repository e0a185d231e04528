package handler

import (
	"github.com/gofiber/fiber/v2"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
)

// Auth serves registration, verification, login and logout.
type Auth struct {
	service  AuthService
	sessions SessionDestroyer
	contexts *httpctx.Manager
	logger   *logger.Logger
}

func NewAuth(service AuthService, sessions SessionDestroyer, contexts *httpctx.Manager, logger *logger.Logger) *Auth {
	return &Auth{
		service:  service,
		sessions: sessions,
		contexts: contexts,
		logger:   logger,
	}
}

func (h *Auth) Register(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	params := model.RegisterParams{
		Username:        c.FormValue("username"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}

	sess, step, err := h.service.Register(c.UserContext(), sess, params)
	if err != nil {
		return err
	}

	h.contexts.SetSession(c, sess)
	return h.next(c, sess, step)
}

func (h *Auth) Verify(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	sess, step, err := h.service.Verify(c.UserContext(), sess, c.FormValue("code"))
	if err != nil {
		return err
	}

	h.contexts.SetSession(c, sess)
	return h.next(c, sess, step)
}

func (h *Auth) Login(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	sess, step, err := h.service.Login(c.UserContext(), sess, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return err
	}

	h.contexts.SetSession(c, sess)
	return h.next(c, sess, step)
}

// LoginPage keeps the bare /login path working.
func (h *Auth) LoginPage(c *fiber.Ctx) error {
	return c.Redirect(PathLogin, fiber.StatusFound)
}

// Logout destroys the whole session, not only its identity.
func (h *Auth) Logout(c *fiber.Ctx) error {
	sess, _ := h.contexts.GetSession(c)

	if err := h.sessions.Destroy(c.UserContext(), sess); err != nil {
		return err
	}
	h.contexts.MarkDestroyed(c)

	h.logger.Info("Auth handler: user logged out",
		"user_id", sess.UserID.String())

	return c.Redirect(PathIndex, fiber.StatusFound)
}

func (h *Auth) next(c *fiber.Ctx, sess model.SessionState, step model.Step) error {
	switch step {
	case model.StepVerify:
		return c.Redirect(PathVerify, fiber.StatusFound)
	case model.StepVerified:
		return c.Redirect(PathSuccess, fiber.StatusFound)
	case model.StepUploadPrompt:
		return c.Redirect(PathUploadPrompt, fiber.StatusFound)
	case model.StepProfile:
		return c.Redirect(ProfilePath(sess.Username), fiber.StatusFound)
	default:
		return c.SendStatus(fiber.StatusNoContent)
	}
}
