// Package routes wires repositories, services and handlers onto the
// fiber app.
package routes

import (
	"log"

	"mudra/internal/config"
	"mudra/internal/handlers"
	"mudra/internal/middleware"
	"mudra/internal/models"
	"mudra/internal/repositories"
	"mudra/internal/services/distribution"
	"mudra/internal/services/limits"
	"mudra/internal/services/policy"
	"mudra/internal/services/transaction"
	"mudra/internal/services/user"
	"mudra/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes builds the dependency graph and registers all routes.
func SetupRoutes(app *fiber.App, cfg config.TransactionConfig) {
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)

	// The treasury is resolved once at startup. Without it the engine
	// still serves simple-move kinds; fee-bearing requests get a
	// service-unavailable error until the treasury is provisioned.
	treasury, err := userRepo.GetByEmail(cfg.TreasuryEmail)
	if err != nil {
		log.Printf("treasury account %q not provisioned: %v", cfg.TreasuryEmail, err)
		treasury = nil
	}

	feePolicy := policy.New(cfg)
	aggregator := limits.NewAggregator(walletRepo)
	engine := distribution.NewEngine(walletRepo, feePolicy, treasury)

	transactionService := transaction.NewService(
		userRepo,
		walletRepo,
		aggregator,
		feePolicy,
		engine,
		repositories.CacheService,
		cfg,
		treasury,
	)
	walletService := wallet.NewService(walletRepo, repositories.CacheService, aggregator)
	userService := user.NewService(repositories.DB, repositories.CacheService)

	transactionHandler := handlers.NewTransactionHandler(transactionService)
	walletHandler := handlers.NewWalletHandler(walletService)
	userHandler := handlers.NewUserHandler(userService)

	auth := middleware.NewAuthMiddleware(userRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api", auth.Handler)

	api.Post("/transactions", transactionHandler.Distribute)

	api.Get("/wallet", walletHandler.GetWallet)
	api.Get("/wallet/transactions", walletHandler.GetTransactionHistory)
	api.Get("/wallet/daily-totals", walletHandler.GetDailyTotals)

	api.Post("/users",
		middleware.RequireRoles(models.RoleRoot, models.RoleAdmin),
		userHandler.Create,
	)
}
