package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/config"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/backend"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/database"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/render"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/repository"
	"github.com/sangkips/stockflow-dashboard/internal/logger"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/handler"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/middleware"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/routes"
	"github.com/sangkips/stockflow-dashboard/internal/receipt"
	"github.com/sangkips/stockflow-dashboard/pkg/money"
	"github.com/sangkips/stockflow-dashboard/pkg/printer"
	"github.com/sangkips/stockflow-dashboard/pkg/utils"
	"go.uber.org/zap"
)

const (
	sessionSweepInterval     = 15 * time.Minute
	idempotencySweepInterval = time.Hour
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger := logger.NewZapLogger(logger.ConfigForEnv(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding))
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Local store for sessions and idempotency keys
	db, err := database.Open(&cfg.Database, !cfg.IsProduction(), appLogger)
	if err != nil {
		appLogger.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		appLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	sealer, err := utils.NewSealer(cfg.Session.Secret)
	if err != nil {
		appLogger.Fatal("invalid session secret", zap.Error(err))
	}

	// Backend REST client and repositories
	client := backend.NewClient(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout}, appLogger)
	authRepo := backend.NewAuthRepository(client)
	categoryRepo := backend.NewCategoryRepository(client)
	productRepo := backend.NewProductRepository(client)
	saleRepo := backend.NewSaleRepository(client)
	stockRepo := backend.NewStockRepository(client)
	dashboardRepo := backend.NewDashboardRepository(client)
	sessionRepo := repository.NewSessionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Receipts
	thermalPrinter, err := printer.New(printer.Config{
		Type:         cfg.Printer.Type,
		DevicePath:   cfg.Printer.USBPath,
		Address:      cfg.Printer.Address,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	if err != nil {
		appLogger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	formatter, err := money.NewFormatter(cfg.Receipt.Currency, cfg.Receipt.Symbol)
	if err != nil {
		appLogger.Fatal("invalid receipt currency", zap.Error(err))
	}
	location, err := time.LoadLocation(cfg.Receipt.Timezone)
	if err != nil {
		appLogger.Warn("unknown receipt timezone, using UTC", zap.String("timezone", cfg.Receipt.Timezone), zap.Error(err))
		location = time.UTC
	}
	receiptOpts := receipt.Options{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Receipt.StoreName,
			Tagline:   cfg.Receipt.Tagline,
			Phone:     cfg.Receipt.Phone,
			Email:     cfg.Receipt.Email,
			Footer:    cfg.Receipt.Footer,
			PoweredBy: cfg.Receipt.PoweredBy,
		},
		Money:    formatter,
		Location: location,
	}

	renderer := render.NewBrowserRenderer(cfg.Browser.Bin, cfg.Browser.Timeout, appLogger)
	defer renderer.Close()

	newWorkspace := func() *service.Workspace {
		return service.NewWorkspace(receipt.NewExporter(receipt.ExporterConfig{
			Options:   receiptOpts,
			Printer:   thermalPrinter,
			Renderer:  renderer,
			CharWidth: cfg.Printer.CharWidth,
			Logger:    appLogger,
		}))
	}

	// Services
	sessions := service.NewSessionManager(authRepo, sessionRepo, service.SessionManagerConfig{
		TTL:          cfg.Session.TTL,
		Sealer:       sealer,
		NewWorkspace: newWorkspace,
		OnClose: func(ctx context.Context, sessionID string) {
			if err := idempotencyRepo.DeleteBySession(ctx, sessionID); err != nil {
				appLogger.Warn("idempotency cleanup failed", zap.Error(err))
			}
		},
		Logger: appLogger,
	})
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, appLogger)
	posService := service.NewPOSService(productRepo, categoryRepo, saleRepo, appLogger)
	saleService := service.NewSaleService(saleRepo, location, appLogger)
	stockService := service.NewStockService(stockRepo, productRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)
	receiptService := service.NewReceiptService(saleRepo, thermalPrinter, receiptOpts, cfg.Printer.CharWidth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions.StartSweeper(ctx, sessionSweepInterval)
	go sweepIdempotencyKeys(ctx, idempotencyRepo.DeleteExpired, appLogger)

	cookie := middleware.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		MaxAge: cfg.Session.TTL,
	}

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(sessions, cookie),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Category:  handler.NewCategoryHandler(categoryService),
		Product:   handler.NewProductHandler(productService),
		POS:       handler.NewPOSHandler(posService),
		Sale:      handler.NewSaleHandler(saleService),
		Stock:     handler.NewStockHandler(stockService),
		Receipt:   handler.NewReceiptHandler(receiptService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Sessions:        sessions,
		Cookie:          cookie,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     middleware.NewSessionRateLimiter(ctx, middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration)),
		Logger:          appLogger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("server shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

func sweepIdempotencyKeys(ctx context.Context, deleteExpired func(context.Context, time.Time) (int64, error), appLogger *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := deleteExpired(ctx, time.Now())
			if err != nil {
				appLogger.Warn("idempotency sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				appLogger.Info("expired idempotency keys swept", zap.Int64("count", n))
			}
		}
	}
}
