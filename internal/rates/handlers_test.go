package rates

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateEndpointIncludesSharePrice(t *testing.T) {
	app := fiber.New()
	h := &Handlers{Provider: &Static{Rate: 34.5, Price: 25000}}
	app.Get("/api/usd-rate", h.Rate)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/usd-rate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 34.5, body.Data["rate"])
	assert.Equal(t, 34.5, body.Data["usd_rate"])
	assert.Equal(t, float64(25000), body.Data["share_price"])
}
