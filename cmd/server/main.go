package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/supplychain/backend/internal/application/catalog"
	inboundapp "github.com/supplychain/backend/internal/application/inbound"
	inventoryapp "github.com/supplychain/backend/internal/application/inventory"
	orderapp "github.com/supplychain/backend/internal/application/order"
	purchaseapp "github.com/supplychain/backend/internal/application/purchase"
	replenishmentapp "github.com/supplychain/backend/internal/application/replenishment"
	settlementapp "github.com/supplychain/backend/internal/application/settlement"
	shipmentapp "github.com/supplychain/backend/internal/application/shipment"
	smartorderapp "github.com/supplychain/backend/internal/application/smartorder"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/infrastructure/cache"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"github.com/supplychain/backend/internal/infrastructure/event"
	forecastinfra "github.com/supplychain/backend/internal/infrastructure/forecast"
	"github.com/supplychain/backend/internal/infrastructure/logger"
	"github.com/supplychain/backend/internal/infrastructure/persistence"
	"github.com/supplychain/backend/internal/infrastructure/scheduler"
	"github.com/supplychain/backend/internal/interfaces/http/handler"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
	"github.com/supplychain/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Supply Chain Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.GormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Outside production the schema is synced on boot; production deploys
	// run the migrate CLI against the SQL files in migrations/ instead.
	if cfg.App.Env != "production" {
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		log.Info("Database schema synced")
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productSupplierRepo := persistence.NewGormProductSupplierRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	orderRepo := persistence.NewGormStoreOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	inboundRepo := persistence.NewGormInboundReceiptRepository(db.DB)
	snapshotRepo := persistence.NewGormSnapshotRepository(db.DB)
	smartOrderRepo := persistence.NewGormSmartOrderRepository(db.DB)
	settlementRepo := persistence.NewGormSettlementRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	purchaseTxScope := persistence.NewGormPurchaseTransactionScope(db.DB)

	// Event bus with an idempotent settlement subscriber. The bus is
	// at-least-once, so the settlement handler sits behind an event-ID
	// dedupe store; Redis when reachable, in-process otherwise.
	eventBus := event.NewInMemoryEventBus(log)

	var idemStore shared.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idemStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idemStore = redisStore
		log.Info("Redis idempotency store connected")
	}

	settlementHandler := event.NewIdempotentHandlerWithConfig(
		settlementapp.NewRequestHandler(settlementRepo, log),
		idemStore,
		shared.IdempotencyConfig{
			Enabled: cfg.Event.IdempotencyEnabled,
			TTL:     cfg.Event.IdempotencyTTL,
		},
		log,
	)
	eventBus.Subscribe(settlementHandler, settlementHandler.EventTypes()...)

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := eventBus.Start(busCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Forecasting service client
	forecastClient := forecastinfra.NewHTTPClient(forecastinfra.Config{
		BaseURL: cfg.Forecast.BaseURL,
		Timeout: cfg.Forecast.Timeout,
	}, log)

	// Initialize application services
	warehouseID := uuid.MustParse(cfg.App.WarehouseID)

	tickService := shipmentapp.NewTickService(txScope, shipmentRepo, orderRepo, eventBus, shipmentapp.TickConfig{
		DwellToTransit:   cfg.Scheduler.DwellToTransit,
		DwellToDelivered: cfg.Scheduler.DwellToDelivered,
		BatchSize:        cfg.Scheduler.TickBatchSize,
	}, log)

	replenishmentCfg := replenishmentapp.Config{
		LookbackDays: cfg.Scheduler.LookbackDays,
		MinLotSize:   cfg.Scheduler.MinLotSize,
	}
	safetyStockService := replenishmentapp.NewSafetyStockService(inventoryRepo, orderRepo, productSupplierRepo, replenishmentCfg, log)
	autoPurchaseNotifier := replenishmentapp.NewLogNotifier(log)
	autoPurchaseService := replenishmentapp.NewAutoPurchaseService(inventoryRepo, orderRepo, productSupplierRepo, purchaseRepo, autoPurchaseNotifier, replenishmentCfg, log)

	generationService := smartorderapp.NewGenerationService(snapshotRepo, smartOrderRepo, productSupplierRepo, inventoryRepo, purchaseRepo, forecastClient, log)
	submitService := smartorderapp.NewSubmitService(smartOrderRepo, purchaseRepo, log)
	smartOrderQueries := smartorderapp.NewQueryService(smartOrderRepo, snapshotRepo)
	retrainService := smartorderapp.NewRetrainService(forecastClient, log)

	rotationService := settlementapp.NewRotationService(settlementRepo, log)
	settlementQueries := settlementapp.NewQueryService(settlementRepo)

	catalogService := catalogapp.NewCatalogService(productRepo, supplierRepo, productSupplierRepo, log)
	orderService := orderapp.NewStoreOrderService(orderRepo, txScope, eventBus, warehouseID, log)
	purchaseService := purchaseapp.NewPurchaseOrderService(purchaseRepo, purchaseTxScope, eventBus, warehouseID, log)
	inventoryQueries := inventoryapp.NewQueryService(inventoryRepo)
	inboundQueries := inboundapp.NewQueryService(inboundRepo)

	// Background jobs
	sched := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log)
	if cfg.Scheduler.Enabled {
		jobs := []scheduler.Job{
			{
				Name:     "shipment-tick",
				Interval: cfg.Scheduler.TickInterval,
				Run: func(ctx context.Context, now time.Time) error {
					_, err := tickService.Tick(ctx, now)
					return err
				},
			},
			{
				Name:     "daily-replenishment",
				Interval: cfg.Scheduler.ReplenishmentInterval,
				Run: func(ctx context.Context, now time.Time) error {
					if _, err := safetyStockService.UpdateDailySafetyStock(ctx, now); err != nil {
						return err
					}
					_, err := autoPurchaseService.Run(ctx, now)
					return err
				},
			},
			{
				Name:     "weekly-smart-order",
				Interval: cfg.Scheduler.SmartOrderInterval,
				Run: func(ctx context.Context, now time.Time) error {
					_, err := generationService.GenerateForWeek(ctx, now)
					return err
				},
			},
			{
				Name:     "monthly-retrain",
				Interval: cfg.Scheduler.RetrainInterval,
				Run:      retrainService.Run,
			},
			{
				Name:     "settlement-rotation",
				Interval: cfg.Scheduler.SettlementRotation,
				Run: func(ctx context.Context, now time.Time) error {
					_, err := rotationService.Rotate(ctx, now)
					return err
				},
			},
		}
		for _, job := range jobs {
			if err := sched.Register(job); err != nil {
				log.Fatal("Failed to register job", zap.String("job", job.Name), zap.Error(err))
			}
		}
		if err := sched.Start(busCtx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		log.Info("Scheduler started", zap.Int("jobs", len(jobs)))
	} else {
		log.Info("Scheduler disabled")
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	smartOrderHandler := handler.NewSmartOrderHandler(smartOrderQueries, submitService)
	forecastHandler := handler.NewForecastHandler(smartOrderQueries)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseService)
	storeOrderHandler := handler.NewStoreOrderHandler(orderService)
	inventoryHandler := handler.NewInventoryHandler(inventoryQueries)
	inboundHandler := handler.NewInboundHandler(inboundQueries)
	settlementHTTPHandler := handler.NewSettlementHandler(settlementQueries)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Configure binding validator to report wire field names
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Setup API routes
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithHealthCheck(systemHandler.Health),
	)
	r.Register(systemHandler).
		Register(catalogHandler).
		Register(storeOrderHandler).
		Register(inventoryHandler).
		Register(purchaseOrderHandler).
		Register(inboundHandler).
		Register(smartOrderHandler).
		Register(forecastHandler).
		Register(settlementHTTPHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Scheduler.Enabled {
		if err := sched.Stop(ctx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
