package requests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"solarvest-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser injects a session user into Locals the way the session middleware
// does after login.
func asUser(u domain.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  u.UserID.String(),
			"fullname": u.Fullname,
			"email":    u.Email,
			"role":     u.Role,
		})
		return c.Next()
	}
}

func investorApp(h *Handlers, u domain.User) *fiber.App {
	app := fiber.New()
	app.Use(asUser(u))
	app.Post("/transactions", h.CreateDeposit)
	app.Post("/transactions/withdraw", h.CreateWithdrawal)
	app.Get("/transactions", h.ListTransactions)
	app.Get("/trade-requests", h.ListTrades)
	return app
}

func adminApp(h *Handlers, u domain.User) *fiber.App {
	app := fiber.New()
	app.Use(asUser(u))
	app.Put("/admin/transactions/:id/approve", h.ApproveTransaction)
	app.Put("/admin/transactions/:id/reject", h.RejectTransaction)
	app.Put("/admin/trade-requests/:id/approve", h.ApproveTrade)
	app.Put("/admin/trade-requests/:id/reject", h.RejectTrade)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	return data
}

func TestDepositLifecycleOverHTTP(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 0)
	admin := createUser(t, db, 0)
	h := &Handlers{Service: s}

	// Investor submits a deposit.
	resp := doJSON(t, investorApp(h, user), "POST", "/transactions", map[string]interface{}{
		"amount": 50000, "type": "deposit",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeData(t, resp)
	requestID, _ := data["request_id"].(string)
	require.NotEmpty(t, requestID)
	assert.Equal(t, "pending", data["status"])

	// Admin approves.
	admApp := adminApp(h, admin)
	resp = doJSON(t, admApp, "PUT", "/admin/transactions/"+requestID+"/approve", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, "approved", data["status"])
	assert.Equal(t, int64(50000), currentBalance(t, db, user.UserID))

	// A repeat approval conflicts.
	resp = doJSON(t, admApp, "PUT", "/admin/transactions/"+requestID+"/approve", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(50000), currentBalance(t, db, user.UserID))
}

func TestCreateDeposit_RejectsWithdrawalType(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 0)
	h := &Handlers{Service: s}

	resp := doJSON(t, investorApp(h, user), "POST", "/transactions", map[string]interface{}{
		"amount": 1000, "type": "withdrawal",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateWithdrawal_ManualDestinationOverHTTP(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)
	h := &Handlers{Service: s}

	resp := doJSON(t, investorApp(h, user), "POST", "/transactions/withdraw", map[string]interface{}{
		"amount":         30000,
		"iban":           "TR120006200000000001234567",
		"account_holder": "Ali Veli",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored domain.TransactionRequest
	require.NoError(t, db.Where("user_id = ?", user.UserID).First(&stored).Error)
	d := withdrawalDetails(t, &stored)
	assert.Equal(t, ManualBankFallback, d.BankName)
	assert.Equal(t, domain.BankSourceManual, d.Source)

	// Submission stages only; balance moves at approval.
	assert.Equal(t, int64(100000), currentBalance(t, db, user.UserID))
}

func TestCreateWithdrawal_NoDestinationOverHTTP(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 100000)
	h := &Handlers{Service: s}

	resp := doJSON(t, investorApp(h, user), "POST", "/transactions/withdraw", map[string]interface{}{
		"amount": 30000,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectTrade_DefaultReason(t *testing.T) {
	s, db := setupService(t)
	user := createUser(t, db, 75000)
	admin := createUser(t, db, 0)
	h := &Handlers{Service: s}
	req := createPendingBuy(t, db, user.UserID, 3)

	resp := doJSON(t, adminApp(h, admin), "PUT", "/admin/trade-requests/"+req.RequestID.String()+"/reject", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "rejected", data["status"])
	assert.Equal(t, "Rejected by admin", data["reason"])
}

func TestApproveTrade_UnknownIDOverHTTP(t *testing.T) {
	s, db := setupService(t)
	admin := createUser(t, db, 0)
	h := &Handlers{Service: s}

	resp := doJSON(t, adminApp(h, admin), "PUT", "/admin/trade-requests/not-a-uuid/approve", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
