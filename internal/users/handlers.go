package users

import (
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes admin-only account management endpoints.
type Handlers struct {
	Service *Service
}

// Create POST /api/admin/users/create
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body struct {
		Fullname   string `json:"fullname"`
		Email      string `json:"email"`
		NationalID string `json:"national_id"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidAmount, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Create(CreateInput{
		Fullname:   body.Fullname,
		Email:      body.Email,
		NationalID: body.NationalID,
		Password:   body.Password,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "User created successfully", fiber.Map{"user": user}, nil)
}

// List GET /api/admin/users
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.List()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Users retrieved successfully", fiber.Map{"users": users}, nil)
}

// AdjustBalance PUT /api/admin/users/:id/balance
func (h *Handlers) AdjustBalance(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "User not found", fiber.StatusNotFound, nil)
	}

	var body struct {
		Amount int64  `json:"amount"`
		Type   string `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidAmount, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Amount <= 0 {
		return response.Error(c, apperr.InvalidAmount, "Amount must be positive", fiber.StatusBadRequest, nil)
	}

	delta := body.Amount
	switch body.Type {
	case "add":
	case "subtract":
		delta = -delta
	default:
		return response.Error(c, apperr.InvalidAmount, "Type must be add or subtract", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.AdjustBalance(c.Context(), userID, delta)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Balance updated successfully", fiber.Map{"user": user}, nil)
}
