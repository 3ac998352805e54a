package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/di"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/storage"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/worker"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/middleware"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/router"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/server"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/validator"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/config"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/logger"
)

// @title GC Photos API
// @version 1.0
// @description 写真バッチアップロードシステム GC Photos の REST API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Logger setup
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Initialize MinIO Storage
	slog.Info("connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.BucketName,
		UseSSL:          cfg.Storage.UseSSL,
		Region:          cfg.Storage.Region,
	})
	if err != nil {
		slog.Error("failed to initialize MinIO client", "error", err)
		os.Exit(1)
	}
	if err := minioClient.EnsureBucket(ctx); err != nil {
		slog.Error("failed to ensure MinIO bucket", "error", err)
		os.Exit(1)
	}
	storageService := storage.NewStorageServiceAdapter(storage.NewStorageService(minioClient))
	slog.Info("connected to MinIO", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.BucketName)

	// Initialize UseCases, Handlers, and Middlewares
	container.InitUploadUseCases(storageService)
	handlers := di.NewHandlers(container)
	handlers.Health.RegisterChecker("minio", minioClient)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig)
	e := srv.Echo()

	// Setup validator and error handler
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Setup Router
	router.NewRouter(e, handlers, middlewares).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewStaleUploadSweepJob(container.Upload.FailExpired, cfg.Upload.SweepInterval))
	if container.PgClient != nil {
		workerMgr.Register(worker.NewHealthCheckJob(func(ctx context.Context) error {
			return container.PgClient.Pool().Ping(ctx)
		}))
	}
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config().ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
