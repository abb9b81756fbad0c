package middleware

import (
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	kind := apperr.Internal
	if code == fiber.StatusNotFound {
		kind = apperr.NotFound
	} else if code == fiber.StatusUnauthorized {
		kind = apperr.Unauthorized
	}

	return response.Error(c, kind, message, code, nil)
}
