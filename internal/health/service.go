package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

var startedAt = time.Now()

// DBPinger is optional; when nil the database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// RateFeeder reports the current USD rate; used only to tell whether the feed
// (or its fallback) is serving.
type RateFeeder interface {
	USDRate(ctx context.Context) float64
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"ping_ms,omitempty"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	HeapMB        int    `json:"heap_mb"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"go_version"`
}

type Result struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

// Collect pings the database and Redis and snapshots runtime stats. Status is
// "ok" only when both stores answer.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger, feed RateFeeder) Result {
	result := Result{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPing *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPing = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPing}

	redisStatus := "disconnected"
	var redisPing *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPing = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPing}

	if feed != nil {
		start := time.Now()
		feedStatus := "serving"
		if feed.USDRate(ctx) <= 0 {
			feedStatus = "error"
		}
		ms := time.Since(start).Milliseconds()
		result.Dependencies["rate_feed"] = DepStatus{Status: feedStatus, PingMs: &ms}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	result.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		HeapMB:        int(m.HeapInuse / 1024 / 1024),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if dbStatus == "connected" && redisStatus == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}
