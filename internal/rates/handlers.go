package rates

import (
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Provider Provider
}

// Rate GET /api/usd-rate — current rate plus the fixed share price, so the
// client can render TL↔USD figures without a second call.
func (h *Handlers) Rate(c *fiber.Ctx) error {
	rate := h.Provider.USDRate(c.Context())
	return response.Success(c, "Rate retrieved successfully", fiber.Map{
		"rate":        rate,
		"usd_rate":    rate,
		"share_price": h.Provider.SharePrice(),
	}, nil)
}
