package portfolio

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

// List GET /api/portfolio
func (h *Handlers) List(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	view, err := h.Service.List(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Portfolio retrieved", view, nil)
}

// Invest POST /api/portfolio/invest
func (h *Handlers) Invest(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"project_id"`
		Amount    int64  `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidAmount, "project_id and amount are required", 400, nil)
	}
	if body.ProjectID == "" || body.Amount == 0 {
		return response.Error(c, apperr.InvalidAmount, "project_id and amount are required", 400, nil)
	}
	projectID, err := uuid.Parse(body.ProjectID)
	if err != nil {
		return response.Error(c, apperr.NotFound, "Invalid project_id", 400, nil)
	}
	if body.Amount < 0 {
		return response.Error(c, apperr.InvalidAmount, "Amount must be a positive number", 400, nil)
	}

	actor := middleware.GetActor(c)
	req, err := h.Service.SubmitBuy(c.Context(), actor.UserID, projectID, body.Amount)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Buy request submitted for approval", req, nil)
}

// Sell POST /api/portfolio/sell
func (h *Handlers) Sell(c *fiber.Ctx) error {
	var body struct {
		PortfolioID string `json:"portfolio_id"`
		Shares      int64  `json:"shares"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidShareCount, "portfolio_id and shares are required", 400, nil)
	}
	if body.PortfolioID == "" || body.Shares == 0 {
		return response.Error(c, apperr.InvalidShareCount, "portfolio_id and shares are required", 400, nil)
	}
	portfolioID, err := uuid.Parse(body.PortfolioID)
	if err != nil {
		return response.Error(c, apperr.NotFound, "Holding not found", 404, nil)
	}

	actor := middleware.GetActor(c)
	req, err := h.Service.SubmitSell(c.Context(), actor.UserID, portfolioID, body.Shares)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Sell request submitted for approval", req, nil)
}

// WithdrawalCheck GET /api/portfolio/withdrawal-check
func (h *Handlers) WithdrawalCheck(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	check, err := h.Service.CheckWithdrawal(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Withdrawal check complete", check, nil)
}
