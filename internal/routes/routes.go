package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/p2p-exchange/p2p_exchange/internal/config"
	"github.com/p2p-exchange/p2p_exchange/internal/funding"
	"github.com/p2p-exchange/p2p_exchange/internal/identity"
	"github.com/p2p-exchange/p2p_exchange/internal/kyc"
	"github.com/p2p-exchange/p2p_exchange/internal/ledger"
	"github.com/p2p-exchange/p2p_exchange/internal/middleware"
	"github.com/p2p-exchange/p2p_exchange/internal/notices"
	"github.com/p2p-exchange/p2p_exchange/internal/orderbook"
	"github.com/p2p-exchange/p2p_exchange/internal/rates"
	"github.com/p2p-exchange/p2p_exchange/internal/transfer"
	"github.com/p2p-exchange/p2p_exchange/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg     config.Config
	DB      *pgxpool.Pool
	Cache   *redis.Client
	Rates   *rates.Table
	Notices *notices.Center
	Logger  *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}
	if d.Rates == nil || d.Notices == nil {
		return fmt.Errorf("rates table and notice center are required")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var ledgerBackend ledger.Ledger
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
	}

	var walletRepo wallet.Repository
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		walletRepo = wallet.NewMemoryRepository()
	}
	walletSvc := wallet.NewService(walletRepo, ledgerBackend, nil)

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo)

	var kycStore kyc.Store
	if d.Cache != nil {
		kycStore = kyc.NewRedisStore(d.Cache)
	} else {
		kycStore = kyc.NewMemoryStore()
	}
	kycSvc := kyc.NewService(kycStore)

	var provider funding.Provider = funding.StaticProvider{}
	if d.Cfg.PaymentProviderURL != "" {
		provider = funding.NewHTTPProvider(d.Cfg.PaymentProviderURL)
	}
	fundingSvc, err := funding.NewService(ledgerBackend, walletSvc, provider, d.Notices)
	if err != nil {
		return err
	}

	transferSvc := transfer.NewService(ledgerBackend, walletSvc, d.Rates, d.Notices)

	identityHandler := identity.NewHandler(identitySvc, walletSvc, d.Logger)
	walletHandler := wallet.NewHandler(walletSvc)
	transferHandler := transfer.NewHandler(transferSvc)
	fundingHandler := funding.NewHandler(fundingSvc)
	kycHandler := kyc.NewHandler(kycSvc)
	ratesHandler := rates.NewHandler(d.Rates)
	noticesHandler := notices.NewHandler(d.Notices)
	orderbookHandler := orderbook.NewHandler(orderbook.NewSeededBook())

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/signup", identityHandler.Signup)
	api.Post("/login", middleware.LoginRateLimit(d.Cache, 5), identityHandler.Login)

	api.Post("/kyc", kycHandler.Submit)
	api.Get("/kyc/status", kycHandler.Status)

	api.Get("/rates", ratesHandler.List)
	api.Get("/rates/:from/:to", ratesHandler.Pair)

	api.Get("/orders", orderbookHandler.List)
	api.Post("/orders", orderbookHandler.Submit)
	api.Get("/orders/stats", orderbookHandler.Stats)

	// Wallet routes require completed identity verification.
	protected := api.Group("", middleware.KYCGate(kycStore))
	protected.Get("/wallets/me", walletHandler.Me)
	protected.Get("/wallets/:walletId/balances", walletHandler.Balances)
	protected.Get("/wallets/:walletId/transactions", walletHandler.History)
	protected.Post("/wallets/:walletId/send", transferHandler.Send)
	protected.Post("/wallets/:walletId/deposits", fundingHandler.Deposit)
	protected.Post("/wallets/:walletId/card-deposits", fundingHandler.CardDeposit)
	protected.Get("/wallets/:walletId/notice", noticesHandler.Current)
	protected.Delete("/wallets/:walletId/notice", noticesHandler.Dismiss)

	return nil
}
