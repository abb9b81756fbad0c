package banks

import (
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// List GET /api/banks — public, feeds the withdrawal form.
func (h *Handlers) List(c *fiber.Ctx) error {
	banks, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Banks retrieved", banks, nil)
}
