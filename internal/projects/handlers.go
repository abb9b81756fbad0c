package projects

import (
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/projects — public catalog.
func (h *Handlers) List(c *fiber.Ctx) error {
	projects, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Projects retrieved", projects, nil)
}

// Get GET /api/projects/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "Project not found", 404, nil)
	}
	project, err := h.Service.Get(c.Context(), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Project retrieved", project, nil)
}
