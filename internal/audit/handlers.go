package audit

import (
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/admin/audit?request_id=&limit=
func (h *Handlers) List(c *fiber.Ctx) error {
	var requestID *uuid.UUID
	if raw := c.Query("request_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			requestID = &id
		}
	}
	entries, err := h.Service.List(requestID, c.QueryInt("limit"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Audit entries retrieved successfully", fiber.Map{"entries": entries}, nil)
}
