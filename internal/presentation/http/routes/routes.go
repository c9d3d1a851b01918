package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/config"
	domainRepo "github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/internal/presentation/http/handler"
	"github.com/brewforge/shift-engine/internal/presentation/http/middleware"
	"github.com/brewforge/shift-engine/pkg/fiscal"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Shift     *handler.ShiftHandler
	Order     *handler.OrderHandler
	Customer  *handler.CustomerHandler
	Inventory *handler.InventoryHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Verifier        *utils.TokenVerifier
	Cfg             *config.Config
	Logger          *logger.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	FiscalGateway   fiscal.Gateway
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":           "ok",
			"service":          deps.Cfg.App.Name,
			"fiscal_available": deps.FiscalGateway.IsAvailable(c.Request.Context()),
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Verifier))
		protected.Use(middleware.RegisterMiddleware())

		rateLimiter := middleware.NewRegisterRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerShiftRoutes(protected, h)
		registerOrderRoutes(protected, h, deps)
		registerCustomerRoutes(protected, h)
		registerInventoryRoutes(protected, h)
		registerProductRoutes(protected, h)
		registerSaleRoutes(protected, h)
	}

	return router
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.POST("", h.Shift.Open)
		shifts.GET("/current", h.Shift.Current)
		shifts.GET("", h.Shift.History)
		shifts.POST("/:id/close", h.Shift.Close)
		shifts.GET("/:id/sales", h.Sale.ListByShift)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	order := protected.Group("/order")
	{
		order.GET("", h.Order.Get)
		order.POST("/lines", h.Order.AddLine)
		order.DELETE("/lines/:product_id", h.Order.RemoveLine)
		order.DELETE("", h.Order.Clear)
		// Checkout requires an idempotency key so a retried submit
		// replays the original sale instead of ringing a second one.
		order.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Checkout)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.POST("", h.Customer.Register)
		customers.GET("/:phone", h.Customer.Get)
		customers.POST("/:phone/credit", h.Customer.Credit)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.POST("", middleware.RequireRole("manager"), h.Inventory.Create)
		inventory.GET("/notifications", h.Inventory.Notifications)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole("manager"), h.Product.Create)
		products.PUT("/:id/recipe", middleware.RequireRole("manager"), h.Product.UpdateRecipe)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("/:id", h.Sale.Get)
	}
}
