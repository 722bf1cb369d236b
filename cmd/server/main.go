package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/application/dashboard"
	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/cache"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/config"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/flatfile"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/logger"
	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/persistence"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/handler"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/middleware"
	"github.com/bapenda-jatim/sts-monitoring/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting STS monitoring service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("data_source", cfg.Data.Source),
	)

	// Source repository: the shared database or exported CSV files.
	sourceRepo, closeSource, err := buildSourceRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize data source", zap.Error(err))
	}
	defer closeSource()

	// The dataset loader reads all four source tables and joins them into
	// the enriched view the dashboard works with.
	loader := func(ctx context.Context) (sts.Dataset, error) {
		txs, err := sourceRepo.FetchTransactions(ctx)
		if err != nil {
			return nil, err
		}
		units, err := sourceRepo.FetchUnits(ctx)
		if err != nil {
			return nil, err
		}
		accounts, err := sourceRepo.FetchAccounts(ctx)
		if err != nil {
			return nil, err
		}
		treasurers, err := sourceRepo.FetchTreasurers(ctx)
		if err != nil {
			return nil, err
		}
		return sts.Enrich(txs, sts.ReferenceData{
			Units:      units,
			Accounts:   accounts,
			Treasurers: treasurers,
		}), nil
	}

	datasetCache := cache.NewDatasetCache(loader, cfg.Cache.DatasetTTL)

	summaryCache, err := cache.NewSummaryCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize summary cache", zap.Error(err))
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()

	dashboardService := dashboard.NewService(
		datasetCache,
		summaryCache,
		cfg.Cache.SummaryTTL,
		cfg.Dashboard.TopUnits,
		cfg.Dashboard.DetailLimit,
		log,
	)

	// Warm the dataset so the first dashboard request does not pay the
	// full load. Failure here is logged and retried on demand.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := datasetCache.Get(ctx); err != nil {
			log.Warn("Initial dataset load failed", zap.Error(err))
		} else {
			log.Info("Dataset warmed", zap.Time("loaded_at", datasetCache.LoadedAt()))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))

	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env, datasetCache)

	// Health check endpoint outside API versioning.
	engine.GET("/healthz", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewDashboardHandler(dashboardService, log))
	r.Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildSourceRepository selects the configured data source. The returned
// cleanup function closes the underlying database connection when one was
// opened.
func buildSourceRepository(cfg *config.Config, log *zap.Logger) (sts.SourceRepository, func(), error) {
	if cfg.Data.Source == "csv" {
		log.Info("Reading data from CSV exports", zap.String("dir", cfg.Data.CSVDir))
		return flatfile.NewRepository(cfg.Data.CSVDir), func() {}, nil
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}
	return persistence.NewGormSourceRepository(db.DB), closeFn, nil
}
