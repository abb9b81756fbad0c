package requests

import (
	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/middleware"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// CreateDeposit POST /api/transactions — simplified deposit (just amount).
func (h *Handlers) CreateDeposit(c *fiber.Ctx) error {
	var body struct {
		Amount int64  `json:"amount"`
		Type   string `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidAmount, "amount is required", 400, nil)
	}
	if body.Type != "" && body.Type != domain.TransactionTypeDeposit {
		return response.Error(c, apperr.InvalidAmount, "Only deposit requests can be created here", 400, nil)
	}

	actor := middleware.GetActor(c)
	req, err := h.Service.SubmitDeposit(c.Context(), actor.UserID, body.Amount)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Deposit request submitted for approval", req, nil)
}

// CreateWithdrawal POST /api/transactions/withdraw
func (h *Handlers) CreateWithdrawal(c *fiber.Ctx) error {
	var body struct {
		Amount        int64  `json:"amount"`
		BankID        string `json:"bank_id"`
		BankName      string `json:"bank_name"`
		IBAN          string `json:"iban"`
		AccountHolder string `json:"account_holder"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, apperr.InvalidAmount, "amount is required", 400, nil)
	}

	dest := Destination{
		BankName:      body.BankName,
		IBAN:          body.IBAN,
		AccountHolder: body.AccountHolder,
	}
	if body.BankID != "" {
		bankID, err := uuid.Parse(body.BankID)
		if err != nil {
			return response.Error(c, apperr.NotFound, "Bank not found", 404, nil)
		}
		dest.BankID = &bankID
	}

	actor := middleware.GetActor(c)
	req, err := h.Service.SubmitWithdrawal(c.Context(), actor.UserID, body.Amount, dest)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Withdrawal request submitted for approval", req, nil)
}

// ListTransactions GET /api/transactions — caller's own requests.
func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	reqs, err := h.Service.ListTransactions(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Transaction requests retrieved", reqs, nil)
}

// ListTrades GET /api/trade-requests — caller's own requests.
func (h *Handlers) ListTrades(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	reqs, err := h.Service.ListTrades(c.Context(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Trade requests retrieved", reqs, nil)
}

// AdminListTransactions GET /api/admin/transactions
func (h *Handlers) AdminListTransactions(c *fiber.Ctx) error {
	reqs, err := h.Service.ListAllTransactions(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Transaction requests retrieved", reqs, nil)
}

// AdminListTrades GET /api/admin/trade-requests
func (h *Handlers) AdminListTrades(c *fiber.Ctx) error {
	reqs, err := h.Service.ListAllTrades(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Trade requests retrieved", reqs, nil)
}

// ApproveTrade PUT /api/admin/trade-requests/:id/approve
func (h *Handlers) ApproveTrade(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "Trade request not found", 404, nil)
	}
	actor := middleware.GetActor(c)

	req, err := h.Service.ApproveTrade(c.Context(), requestID, actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Trade request approved", req, nil)
}

// RejectTrade PUT /api/admin/trade-requests/:id/reject
func (h *Handlers) RejectTrade(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "Trade request not found", 404, nil)
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body)
	if body.Reason == "" {
		body.Reason = "Rejected by admin"
	}
	actor := middleware.GetActor(c)

	req, err := h.Service.RejectTrade(c.Context(), requestID, actor.UserID, body.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Trade request rejected", req, nil)
}

// ApproveTransaction PUT /api/admin/transactions/:id/approve
func (h *Handlers) ApproveTransaction(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "Transaction request not found", 404, nil)
	}
	actor := middleware.GetActor(c)

	req, err := h.Service.ApproveTransaction(c.Context(), requestID, actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Transaction request approved", req, nil)
}

// RejectTransaction PUT /api/admin/transactions/:id/reject
func (h *Handlers) RejectTransaction(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.NotFound, "Transaction request not found", 404, nil)
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&body)
	if body.Reason == "" {
		body.Reason = "Rejected by admin"
	}
	actor := middleware.GetActor(c)

	req, err := h.Service.RejectTransaction(c.Context(), requestID, actor.UserID, body.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Transaction request rejected", req, nil)
}
