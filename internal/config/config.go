package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string

	// SharePrice is the fixed price of one project share in TL.
	SharePrice int64
	// RateFeedURL is the external USD/TRY rate source; empty disables the feed.
	RateFeedURL     string
	RateFeedTimeout time.Duration
	// DefaultUSDRate is served when the feed is unreachable.
	DefaultUSDRate float64

	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	sharePrice := viper.GetInt64("SHARE_PRICE")
	if sharePrice == 0 {
		sharePrice = 25000
	}
	defaultRate := viper.GetFloat64("DEFAULT_USD_RATE")
	if defaultRate == 0 {
		defaultRate = 34.50
	}
	feedTimeout := viper.GetDuration("RATE_FEED_TIMEOUT")
	if feedTimeout == 0 {
		feedTimeout = 5 * time.Second
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		SharePrice:          sharePrice,
		RateFeedURL:         viper.GetString("RATE_FEED_URL"),
		RateFeedTimeout:     feedTimeout,
		DefaultUSDRate:      defaultRate,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
