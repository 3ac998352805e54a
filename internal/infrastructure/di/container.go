package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/cache"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/database"
	infraRepo "github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/config"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/jwt"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   repository.TransactionManager

	// Services
	JWTService *jwt.JWTService

	// Repositories
	JobRepo repository.UploadJobRepository

	// Read model cache
	SnapshotCache query.JobSnapshotCache

	// Upload UseCases
	Upload *UploadUseCases

	// config
	config *config.Config
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	switch {
	case opts.JobRepo != nil:
		c.JobRepo = opts.JobRepo
		c.TxManager = opts.TxManager
		if c.TxManager == nil {
			c.TxManager = NoopTxManager{}
		}
	case opts.PostgresPool != nil:
		txManager := database.NewTxManager(opts.PostgresPool)
		c.TxManager = txManager
		c.JobRepo = infraRepo.NewUploadJobRepository(txManager)
	default:
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		txManager := database.NewTxManager(pgClient.Pool())
		c.TxManager = txManager
		c.JobRepo = infraRepo.NewUploadJobRepository(txManager)
		slog.Info("connected to PostgreSQL")
	}

	// Redis
	switch {
	case opts.SnapshotCache != nil:
		c.SnapshotCache = opts.SnapshotCache
	default:
		slog.Info("connecting to Redis...")
		redisConfig := cache.DefaultConfig()
		redisConfig.URL = cfg.Redis.URL
		redisClient, err := cache.NewRedisClient(redisConfig)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = redisClient
		c.SnapshotCache = cache.NewJobSnapshotStore(redisClient, cache.DefaultSnapshotTTL)
		slog.Info("connected to Redis")
	}

	// JWT Service
	jwtConfig := jwt.Config{
		SecretKey:         cfg.JWT.SecretKey,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
		AccessTokenExpiry: 15 * time.Minute,
	}
	c.JWTService = jwt.NewJWTService(jwtConfig)

	return c, nil
}

// InitUploadUseCases はUpload UseCasesを初期化します
// StorageServiceはMinIO接続後にmainから渡されます
func (c *Container) InitUploadUseCases(storageService service.StorageService) {
	c.Upload = NewUploadUseCases(c.JobRepo, c.TxManager, storageService, c.SnapshotCache, c.config.Upload)
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Options はContainer作成時のオプションを定義します
// テストではインメモリリポジトリとスタブキャッシュを注入できます
type Options struct {
	PostgresPool  *pgxpool.Pool
	JobRepo       repository.UploadJobRepository
	TxManager     repository.TransactionManager
	SnapshotCache query.JobSnapshotCache
}

// NoopTxManager はトランザクションなしで関数を実行するTransactionManagerです
// インメモリリポジトリと組み合わせて使います
type NoopTxManager struct{}

// WithTransaction は関数をそのまま実行します
func (NoopTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
