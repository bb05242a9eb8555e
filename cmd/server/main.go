// Package main is the entry point for the mudra server. It loads
// configuration, initializes PostgreSQL and redis, wires the service
// graph and starts the HTTP listener.
package main

import (
	"context"
	"log"

	"mudra/internal/config"
	"mudra/internal/repositories"
	"mudra/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Drop any stale cache entries left over from a previous run.
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			log.Printf("Failed to flush redis cache: %v", err)
		}
	}

	txConfig := config.LoadTransactionConfig()

	app := fiber.New(fiber.Config{
		AppName: "mudra",
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max: config.GetIntEnv("RATE_LIMIT_MAX", 100),
	}))

	routes.SetupRoutes(app, txConfig)

	port := config.GetEnv("PORT", "8080")
	log.Printf("Starting server on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
