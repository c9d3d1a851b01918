package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/config"
	"github.com/brewforge/shift-engine/internal/infrastructure/database"
	"github.com/brewforge/shift-engine/internal/infrastructure/repository"
	"github.com/brewforge/shift-engine/internal/presentation/http/handler"
	"github.com/brewforge/shift-engine/internal/presentation/http/routes"
	"github.com/brewforge/shift-engine/pkg/fiscal"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/notify"
	"github.com/brewforge/shift-engine/pkg/utils"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:       logger.LogLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Environment: cfg.App.Env,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Warn("Failed to seed default data", "error", err)
	}
	// Ingredient specs are parsed eagerly: a malformed spec aborts startup
	// instead of surfacing mid-shift.
	if err := database.RebuildRecipes(db); err != nil {
		log.Error("Failed to build recipes from ingredient specs", "error", err)
		os.Exit(1)
	}

	verifier := utils.NewTokenVerifier(cfg.JWT.Secret)

	// Repositories
	shiftRepo := repository.NewShiftRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	productRepo := repository.NewProductRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Fiscal gateway: falls back to a no-op gateway when no endpoint is
	// configured, sales then commit unfiscalized.
	gateway := fiscal.NewGatewayFromConfig(cfg.Fiscal.Endpoint, cfg.Fiscal.Timeout)

	notifications := notify.NewBufferNotifier(100, notify.NewLogNotifier(log))

	// Services
	carts := service.NewCartRegistry()
	shiftService := service.NewShiftService(shiftRepo, cfg.Shift.OperatorPINHash, log)
	bonusService := service.NewBonusService(customerRepo, cfg.Bonus, log)
	inventoryService := service.NewInventoryService(inventoryRepo, recipeRepo, notifications, log)
	catalogService := service.NewCatalogService(productRepo, recipeRepo, inventoryRepo, log)
	checkoutService := service.NewCheckoutService(carts, shiftService, bonusService, inventoryService, saleRepo, gateway, log)

	// Sales left pending by a crash are marked abandoned, not silently
	// dropped.
	if abandoned, err := checkoutService.Reconcile(context.Background()); err != nil {
		log.Warn("Failed to reconcile pending sales", "error", err)
	} else if abandoned > 0 {
		log.Warn("Abandoned dangling pending sales", "count", abandoned)
	}

	// Expired idempotency keys are garbage; sweep them periodically.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Warn("Failed to sweep expired idempotency keys", "error", err)
			}
		}
	}()

	handlers := &routes.Handlers{
		Shift:     handler.NewShiftHandler(shiftService, carts),
		Order:     handler.NewOrderHandler(carts, checkoutService, productRepo),
		Customer:  handler.NewCustomerHandler(bonusService),
		Inventory: handler.NewInventoryHandler(inventoryService, inventoryRepo, notifications),
		Product:   handler.NewProductHandler(catalogService),
		Sale:      handler.NewSaleHandler(saleRepo),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Verifier:        verifier,
		Cfg:             cfg,
		Logger:          log,
		IdempotencyRepo: idempotencyRepo,
		FiscalGateway:   gateway,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info("Starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
