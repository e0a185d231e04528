package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/web"
)

const notLoggedIn = "You must be logged in."

// Profile serves profile pages and image management.
type Profile struct {
	service  ProfileService
	views    Renderer
	contexts *httpctx.Manager
	logger   *logger.Logger
}

func NewProfile(service ProfileService, views Renderer, contexts *httpctx.Manager, logger *logger.Logger) *Profile {
	return &Profile{
		service:  service,
		views:    views,
		contexts: contexts,
		logger:   logger,
	}
}

func (h *Profile) UserPage(c *fiber.Ctx) error {
	return h.renderUser(c, web.PageUser)
}

func (h *Profile) UserTextPage(c *fiber.Ctx) error {
	return h.renderUser(c, web.PageUserText)
}

func (h *Profile) renderUser(c *fiber.Ctx, page string) error {
	sess, _ := h.contexts.GetSession(c)

	user, err := h.service.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}

	return render(c, h.views, page, PageData{
		User:   &user,
		Viewer: sess.Username,
		Owner:  sess.Authenticated() && sess.Username == user.Username,
	})
}

// Upload returns a handler storing the multipart file of the kind's field.
func (h *Profile) Upload(kind model.ImageKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := h.contexts.GetSession(c)
		if sess.UserID == uuid.Nil {
			return apperror.NewAuthentication(notLoggedIn)
		}

		header, err := c.FormFile(kind.Field())
		if err != nil {
			return apperror.NewValidation("No file uploaded.")
		}

		content, err := header.Open()
		if err != nil {
			return apperror.NewValidation("No file uploaded.")
		}
		defer content.Close()

		file := model.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Size:        header.Size,
			Content:     content,
		}

		user, err := h.service.AttachImage(c.UserContext(), sess, kind, file)
		if err != nil {
			return err
		}

		return c.Redirect(ProfilePath(user.Username), fiber.StatusFound)
	}
}

// Remove returns a handler clearing the kind's image.
func (h *Profile) Remove(kind model.ImageKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := h.contexts.GetSession(c)

		user, err := h.service.RemoveImage(c.UserContext(), sess, kind)
		if err != nil {
			return err
		}

		return c.Redirect(ProfilePath(user.Username), fiber.StatusFound)
	}
}

// Image returns a handler streaming stored images of the kind.
func (h *Profile) Image(kind model.ImageKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		object, err := h.service.OpenImage(c.UserContext(), kind, c.Params("name"))
		if err != nil {
			return err
		}

		if object.ContentType != "" {
			c.Set(fiber.HeaderContentType, object.ContentType)
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
		return c.SendStream(object.Body, int(object.Size))
	}
}

func render(c *fiber.Ctx, views Renderer, page string, data PageData) error {
	var buf bytes.Buffer
	if err := views.Render(&buf, page, data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
