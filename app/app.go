package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"rocketboost-admin/app/controller"
	"rocketboost-admin/app/middleware"
	"rocketboost-admin/app/router"
	"rocketboost-admin/config"
	"rocketboost-admin/logging"
	"rocketboost-admin/pricing"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
)

const (
	// cacheMaxCost bounds the shared in-memory cache (slip previews and balances)
	cacheMaxCost = 64 << 20

	// five login attempts per IP, then one every 12 seconds
	loginBurst    = 5
	loginInterval = 12 * time.Second
)

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler http.Handler
	cache   *service.Cache
}

// Initialize wires repositories, services and controllers
func Initialize(ctx context.Context, cfg *config.Config, database *sqlx.DB) (*App, error) {
	engine, err := pricing.NewEngine(cfg.RatesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}

	cache, err := service.NewCache(cacheMaxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	// Drive is optional; slips on Drive links fall back to plain HTTP
	var driveService service.DriveServiceInterface
	if cfg.GoogleCredentialsPath != "" {
		ds, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			logging.Sugar.Warnf("⚠️ Google Drive disabled: %v", err)
		} else {
			driveService = ds
		}
	}

	httpClient := &http.Client{Timeout: cfg.WebhookTimeout}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(database)
	serviceRepo := repository.NewServiceRepository(database)
	providerRepo := repository.NewProviderRepository(database)
	userRepo := repository.NewUserRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	statsRepo := repository.NewStatsRepository(database)

	// Initialize services
	fulfillment := service.NewFulfillmentService(orderRepo, httpClient, cfg.BulkWebhookURL, cfg.RefillWebhookURL)
	balances := service.NewBalanceService(providerRepo, httpClient, cache, cfg.BalanceCacheTTL, cfg.LowBalanceThreshold)
	slips := service.NewSlipService(transactionRepo, driveService, httpClient, cache)
	documents, err := service.NewQuoteDocumentService(engine, cfg.ChromePath)
	if err != nil {
		cache.Close()
		return nil, err
	}
	auth := service.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)

	if cfg.BulkWebhookURL == "" || cfg.RefillWebhookURL == "" {
		logging.Sugar.Warn("⚠️ N8N webhook URLs not fully configured, order forwarding endpoints will fail")
	}

	controllers := &router.Controllers{
		Order:    controller.NewOrderController(orderRepo, fulfillment),
		Service:  controller.NewServiceController(serviceRepo),
		Provider: controller.NewProviderController(providerRepo, balances),
		User:     controller.NewUserController(userRepo, transactionRepo, slips),
		Stats:    controller.NewStatsController(statsRepo),
		Pricing:  controller.NewPricingController(engine, documents),
		Auth:     controller.NewAuthController(auth),
	}

	opts := router.Options{CORSOrigin: cfg.CORSOrigin, TrustProxy: cfg.TrustProxy}
	if cfg.AuthEnabled() {
		opts.Tokens = auth
	}
	opts.LoginLimiter = middleware.NewRateLimiter(loginInterval, loginBurst)

	return &App{
		Handler: router.NewRouter(controllers, opts),
		cache:   cache,
	}, nil
}

// Close releases in-memory resources
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
