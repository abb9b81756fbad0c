package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solarvest-backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func testClient(baseURL string) *Client {
	return New(&config.Config{
		RateFeedURL:     baseURL,
		RateFeedTimeout: 2 * time.Second,
		DefaultUSDRate:  34.5,
		SharePrice:      25000,
	})
}

func TestUSDRate_FromFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "TRY", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount":1.0,"base":"USD","rates":{"TRY":41.25}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	assert.Equal(t, 41.25, c.USDRate(context.Background()))
}

func TestUSDRate_MalformedPayloadFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	assert.Equal(t, 34.5, c.USDRate(context.Background()))
}

func TestUSDRate_MissingCurrencyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"EUR":0.91}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	assert.Equal(t, 34.5, c.USDRate(context.Background()))
}

func TestUSDRate_NoFeedConfigured(t *testing.T) {
	c := testClient("")
	assert.Equal(t, 34.5, c.USDRate(context.Background()))
}

func TestSharePrice(t *testing.T) {
	c := testClient("")
	assert.Equal(t, int64(25000), c.SharePrice())
}
