package health

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s *stubPinger) Ping() error { return s.err }

type stubFeed struct{ rate float64 }

func (s *stubFeed) USDRate(ctx context.Context) float64 { return s.rate }

func testRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestCollect_AllConnected(t *testing.T) {
	rdb := testRedis(t)
	result := Collect(context.Background(), rdb, &stubPinger{}, &stubFeed{rate: 34.5})

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "serving", result.Dependencies["rate_feed"].Status)
	assert.NotEmpty(t, result.Runtime.GoVersion)
}

func TestCollect_DatabaseDown(t *testing.T) {
	rdb := testRedis(t)
	result := Collect(context.Background(), rdb, &stubPinger{err: errors.New("refused")}, nil)

	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestCollect_NilDependencies(t *testing.T) {
	result := Collect(context.Background(), nil, nil, nil)

	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	_, hasFeed := result.Dependencies["rate_feed"]
	assert.False(t, hasFeed)
}

func TestJSONHandler(t *testing.T) {
	rdb := testRedis(t)
	h := &Handlers{Rdb: rdb, DB: &stubPinger{}, Feed: &stubFeed{rate: 34.5}}

	app := fiber.New()
	app.Get("/health", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJSONHandler_Degraded(t *testing.T) {
	h := &Handlers{}

	app := fiber.New()
	app.Get("/health", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
