package rates

import (
	"context"
	"encoding/json"

	"solarvest-backend/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Client fetches the USD/TRY rate from an external feed on every call; rates
// are deliberately not cached across requests, so two listings a second apart
// may report different USD figures. A feed failure falls back to the
// configured default rate so read paths degrade instead of failing.
type Client struct {
	client      *resty.Client
	defaultRate float64
	sharePrice  int64
}

func New(cfg *config.Config) *Client {
	client := resty.New().
		SetTimeout(cfg.RateFeedTimeout).
		SetBaseURL(cfg.RateFeedURL)
	return &Client{
		client:      client,
		defaultRate: cfg.DefaultUSDRate,
		sharePrice:  cfg.SharePrice,
	}
}

// feedResponse matches the Frankfurter-style payload:
// GET /latest?from=USD&to=TRY -> {"rates":{"TRY":41.2}}
type feedResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (c *Client) USDRate(ctx context.Context) float64 {
	if c.client.BaseURL == "" {
		return c.defaultRate
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{"from": "USD", "to": "TRY"}).
		Get("/latest")
	if err != nil {
		log.Warn().Err(err).Msg("rate feed unreachable, using default rate")
		return c.defaultRate
	}

	var body feedResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.Warn().Err(err).Msg("rate feed returned malformed payload, using default rate")
		return c.defaultRate
	}
	rate, ok := body.Rates["TRY"]
	if !ok || rate <= 0 {
		log.Warn().Msg("rate feed missing TRY rate, using default rate")
		return c.defaultRate
	}
	return rate
}

func (c *Client) SharePrice() int64 {
	return c.sharePrice
}
