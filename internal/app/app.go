package app

import (
	"solarvest-backend/internal/audit"
	"solarvest-backend/internal/auth"
	"solarvest-backend/internal/banks"
	"solarvest-backend/internal/config"
	"solarvest-backend/internal/database"
	"solarvest-backend/internal/health"
	"solarvest-backend/internal/kyc"
	"solarvest-backend/internal/ledger"
	"solarvest-backend/internal/middleware"
	"solarvest-backend/internal/portfolio"
	"solarvest-backend/internal/projects"
	"solarvest-backend/internal/rates"
	"solarvest-backend/internal/requests"
	"solarvest-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. When db is nil it is opened from cfg.DatabaseURL; tests pass
// their own connection.
func CreateApp(cfg *config.Config, db *gorm.DB) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	if db == nil {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	}

	// Shared services
	rateProvider := rates.New(cfg)
	ldg := ledger.New(db, cfg.SharePrice)
	kycService := &kyc.Service{DB: db}
	bankService := &banks.Service{DB: db}

	// --- Public routes ---
	var pinger health.DBPinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	healthHandlers := &health.Handlers{Rdb: rdb, DB: pinger, Feed: rateProvider}
	app.Get("/health", healthHandlers.JSON)

	rateHandlers := &rates.Handlers{Provider: rateProvider}
	app.Get("/api/usd-rate", rateHandlers.Rate)

	bankHandlers := &banks.Handlers{Service: bankService}
	app.Get("/api/banks", bankHandlers.List)

	projectHandlers := &projects.Handlers{Service: &projects.Service{DB: db}}
	app.Get("/api/projects", projectHandlers.List)
	app.Get("/api/projects/:id", projectHandlers.Get)

	// --- Auth ---
	authHandlers := &auth.Handlers{
		Service: &auth.Service{DB: db},
		Rdb:     rdb,
		Config:  sessionCfg,
	}
	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Post("/login-investor", authHandlers.LoginInvestor)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Investor routes (auth required) ---
	portfolioHandlers := &portfolio.Handlers{Service: &portfolio.Service{
		DB:    db,
		Rates: rateProvider,
		Kyc:   kycService,
	}}
	portfolioGroup := app.Group("/api/portfolio", middleware.RequireAuth())
	portfolioGroup.Get("/", portfolioHandlers.List)
	portfolioGroup.Post("/invest", portfolioHandlers.Invest)
	portfolioGroup.Post("/sell", portfolioHandlers.Sell)
	portfolioGroup.Get("/withdrawal-check", portfolioHandlers.WithdrawalCheck)

	requestHandlers := &requests.Handlers{Service: &requests.Service{
		DB:     db,
		Ledger: ldg,
		Banks:  bankService,
	}}
	txGroup := app.Group("/api/transactions", middleware.RequireAuth())
	txGroup.Get("/", requestHandlers.ListTransactions)
	txGroup.Post("/", requestHandlers.CreateDeposit)
	txGroup.Post("/withdraw", requestHandlers.CreateWithdrawal)
	app.Get("/api/trade-requests", middleware.RequireAuth(), requestHandlers.ListTrades)

	kycHandlers := &kyc.Handlers{Service: kycService}
	app.Get("/api/kyc/me", middleware.RequireAuth(), kycHandlers.Me)

	// --- Admin routes ---
	adminGroup := app.Group("/api/admin", middleware.RequireAuth(), middleware.RequireAdmin())

	userHandlers := &users.Handlers{Service: &users.Service{DB: db, Ledger: ldg}}
	adminGroup.Post("/users/create", userHandlers.Create)
	adminGroup.Get("/users", userHandlers.List)
	adminGroup.Put("/users/:id/balance", userHandlers.AdjustBalance)

	adminGroup.Get("/kyc", kycHandlers.ListAll)
	adminGroup.Put("/kyc/:user_id", kycHandlers.SetStatus)

	adminGroup.Get("/transactions", requestHandlers.AdminListTransactions)
	adminGroup.Put("/transactions/:id/approve", requestHandlers.ApproveTransaction)
	adminGroup.Put("/transactions/:id/reject", requestHandlers.RejectTransaction)

	adminGroup.Get("/trade-requests", requestHandlers.AdminListTrades)
	adminGroup.Put("/trade-requests/:id/approve", requestHandlers.ApproveTrade)
	adminGroup.Put("/trade-requests/:id/reject", requestHandlers.RejectTrade)

	auditHandlers := &audit.Handlers{Service: &audit.Service{DB: db}}
	adminGroup.Get("/audit", auditHandlers.List)

	return app, nil
}
