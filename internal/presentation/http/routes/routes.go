package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/config"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/handler"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	POS       *handler.POSHandler
	Sale      *handler.SaleHandler
	Stock     *handler.StockHandler
	Receipt   *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Sessions        *service.SessionManager
	Cookie          middleware.SessionCookie
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.SessionRateLimiter
	Logger      *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidation()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  deps.Cfg.App.Name,
			"sessions": deps.Sessions.Active(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		registerAuthRoutes(public, h)

		protected := v1.Group("")
		protected.Use(middleware.SessionAuth(deps.Sessions, deps.Cookie))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}
		if deps.IdempotencyRepo != nil {
			protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: logger}))
		}

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	auth := protected.Group("/auth")
	{
		auth.GET("/me", h.Auth.Me)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/logout-all", h.Auth.LogoutAll)
	}

	protected.GET("/dashboard/stats", h.Dashboard.GetStats)

	registerCategoryRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerPOSRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerStockRoutes(protected, h)
	registerReceiptRoutes(protected, h)
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:code", h.Product.GetByBarcode)
		products.GET("/import/template", h.Product.Template)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.PATCH("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/restock", h.Stock.Restock)
		products.GET("/:id/stock-history", h.Stock.History)
	}
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers) {
	pos := protected.Group("/pos")
	{
		pos.GET("/catalog", h.POS.Catalog)
		pos.GET("/cart", h.POS.Cart)
		pos.DELETE("/cart", h.POS.Clear)
		pos.POST("/cart/items", h.POS.AddItem)
		pos.PUT("/cart/items/:productId", h.POS.SetQuantity)
		pos.DELETE("/cart/items/:productId", h.POS.RemoveItem)
		pos.PUT("/cart/discount", h.POS.SetDiscount)
		pos.PUT("/cart/customer", h.POS.SetCustomer)
		pos.POST("/checkout", h.POS.Checkout)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/summary", h.Sale.Summary)
		sales.GET("/export", h.Sale.Export)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Receipt.Preview)
		sales.POST("/:id/void", h.Sale.Void)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stock := protected.Group("/stock")
	{
		stock.GET("/logs", h.Stock.Logs)
		stock.POST("/restock", h.Stock.Restock)
		stock.POST("/adjust", h.Stock.Adjust)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("/preview", h.Receipt.Preview)
		receipts.POST("/print", h.Receipt.Print)
		receipts.GET("/pdf", h.Receipt.PDF)
		receipts.GET("/status", h.Receipt.GetStatus)
		receipts.POST("/test-print", h.Receipt.TestPrint)
	}
}
