package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rentall-dev/fleet-admin-api/api/swagger"
	"github.com/rentall-dev/fleet-admin-api/internal/handler"
	"github.com/rentall-dev/fleet-admin-api/internal/middleware"
	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/repository"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
	"github.com/rentall-dev/fleet-admin-api/pkg/cache"
	"github.com/rentall-dev/fleet-admin-api/pkg/config"
	"github.com/rentall-dev/fleet-admin-api/pkg/database"
	"github.com/rentall-dev/fleet-admin-api/pkg/logger"
	corsmiddleware "github.com/rentall-dev/fleet-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rentall-dev/fleet-admin-api/pkg/middleware/requestid"
	"github.com/rentall-dev/fleet-admin-api/pkg/storage"
)

// @title Fleet Admin API
// @version 1.0.0
// @description Rental fleet administration console backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	fileStore, err := storage.NewLocalStorage(cfg.Reports.ExportStorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	widgetRepo := repository.NewWidgetRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	reportRepo := repository.NewReportRepository(db, cfg.Reports.MaxRows)
	exportJobRepo := repository.NewExportJobRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)

	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	}, nil, logr)

	pageSize := cfg.Search.DefaultPageSize
	agreementSvc := service.NewAgreementService(agreementRepo, pageSize, nil, logr)
	reservationSvc := service.NewReservationService(reservationRepo, pageSize, nil, logr)
	customerSvc := service.NewCustomerService(customerRepo, pageSize, nil, logr)
	vehicleSvc := service.NewVehicleService(vehicleRepo, pageSize, nil, logr)
	locationSvc := service.NewLocationService(locationRepo, pageSize, nil, logr)
	userSvc := service.NewUserService(userRepo, pageSize, nil, logr)

	widgetSvc := service.NewWidgetService(widgetRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	columnSvc := service.NewColumnService(columnRepo, logr)

	reportSvc := service.NewReportService(service.ReportServiceParams{
		Repo:       reportRepo,
		Metrics:    metricsSvc,
		RunTimeout: cfg.Reports.RunTimeout,
		Logger:     logr,
	})
	exportSvc := service.NewExportService(reportSvc, reportRepo, exportJobRepo, fileStore, signer, service.ExportConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
		Workers:         cfg.Reports.WorkerConcurrency,
		MaxRetries:      cfg.Reports.WorkerRetries,
	}, logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	agreementHandler := handler.NewAgreementHandler(agreementSvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	customerHandler := handler.NewCustomerHandler(customerSvc)
	vehicleHandler := handler.NewVehicleHandler(vehicleSvc)
	locationHandler := handler.NewLocationHandler(locationSvc)
	userHandler := handler.NewUserHandler(userSvc)
	widgetHandler := handler.NewWidgetHandler(widgetSvc)
	columnHandler := handler.NewColumnHandler(columnSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.POST("/auth/password", authHandler.ChangePassword)

		authed.GET("/agreements", agreementHandler.List)
		authed.GET("/agreements/:id", agreementHandler.Get)
		authed.POST("/agreements", agreementHandler.Create)
		authed.PATCH("/agreements/:id/status", agreementHandler.UpdateStatus)

		authed.GET("/reservations", reservationHandler.List)
		authed.GET("/reservations/:id", reservationHandler.Get)
		authed.POST("/reservations", reservationHandler.Create)
		authed.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)

		authed.GET("/customers", customerHandler.List)
		authed.GET("/customers/:id", customerHandler.Get)
		authed.POST("/customers", customerHandler.Create)
		authed.PUT("/customers/:id", customerHandler.Update)

		authed.GET("/vehicles", vehicleHandler.List)
		authed.GET("/vehicles/:id", vehicleHandler.Get)
		authed.POST("/vehicles", vehicleHandler.Create)
		authed.PUT("/vehicles/:id", vehicleHandler.Update)

		authed.GET("/locations", locationHandler.List)
		authed.GET("/locations/:id", locationHandler.Get)
		authed.POST("/locations", locationHandler.Create)
		authed.PUT("/locations/:id", locationHandler.Update)

		authed.GET("/dashboard/widgets", widgetHandler.List)
		authed.POST("/dashboard/widgets", widgetHandler.Save)

		authed.GET("/columns", columnHandler.List)
		authed.POST("/columns", columnHandler.Save)

		authed.GET("/reports", reportHandler.List)
		authed.GET("/reports/:id", reportHandler.Describe)
		authed.PUT("/reports/:id/criteria", reportHandler.SetCriterion)
		authed.POST("/reports/:id/run", reportHandler.Run)
		authed.POST("/reports/:id/reset", reportHandler.Reset)
		authed.GET("/reports/:id/result", reportHandler.Result)
		authed.POST("/reports/:id/exports", reportHandler.Export)
		authed.GET("/exports/:jobId", reportHandler.ExportStatus)

		authed.GET("/system/metrics", metricsHandler.System)

		admin := authed.Group("/users")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("", userHandler.List)
			admin.GET("/:id", userHandler.Get)
			admin.POST("", userHandler.Create)
			admin.PUT("/:id", userHandler.Update)
		}
	}

	// Download authenticates through the signed token, not the JWT, so the
	// browser can fetch it with a plain link.
	api.GET("/reports/exports/download", reportHandler.Download)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
