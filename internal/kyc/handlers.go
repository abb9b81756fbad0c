package kyc

import (
	"solarvest-backend/internal/middleware"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// Me GET /api/kyc/me — the caller's own verification status.
func (h *Handlers) Me(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	rec, err := h.Service.Get(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Verification status retrieved", rec, nil)
}

// ListAll GET /api/admin/kyc
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	recs, err := h.Service.ListAll(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Verification records retrieved", recs, nil)
}

// SetStatus PUT /api/admin/kyc/:user_id
func (h *Handlers) SetStatus(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "User not found", 404, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, apperr.InvalidAmount, "status is required", 400, nil)
	}

	rec, err := h.Service.SetStatus(c.Context(), userID, body.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Verification status updated", rec, nil)
}
