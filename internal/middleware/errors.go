package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// statusOf resolves the HTTP status for err, honouring *fiber.Error codes.
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperr.Status(err)
}

// ErrorHandler renders every error returned by a handler as a JSON body.
// Messages of 5xx errors are replaced so store details never reach clients.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusOf(err)
		message := err.Error()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			message = fe.Message
		}
		if status >= http.StatusInternalServerError {
			if logger != nil {
				logger.Error("request failed",
					slog.String("method", c.Method()),
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
			}
			message = strings.ToLower(http.StatusText(status))
		}
		return c.Status(status).JSON(errorResponse{Success: false, Message: message})
	}
}
