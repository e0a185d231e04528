package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/logger"
)

const internalMessage = "Internal server error."

// ErrorHandler turns handler errors into plain-text responses. Application
// errors keep their message; anything else is reported as a bare 500.
func ErrorHandler(logger *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := fiber.StatusInternalServerError, internalMessage

		var appErr *apperror.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code = appErr.Status()
			if appErr.Kind != apperror.KindInternal {
				message = appErr.Message
			}
		case errors.As(err, &fiberErr):
			code, message = fiberErr.Code, fiberErr.Message
		default:
			logger.Error("HTTP handler: unhandled error",
				"path", c.Path(),
				"error", err.Error())
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
}
