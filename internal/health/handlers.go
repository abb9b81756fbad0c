package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb  *redis.Client
	DB   DBPinger
	Feed RateFeeder
}

// JSON GET /health — machine-readable status. 200 when both stores answer,
// 503 otherwise.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := Collect(c.Context(), h.Rdb, h.DB, h.Feed)
	code := fiber.StatusOK
	if result.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(result)
}
