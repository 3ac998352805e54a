package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/di"
	infraRepo "github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/middleware"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/router"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/validator"
	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/config"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/jwt"
)

// TestServer holds all test server dependencies
type TestServer struct {
	Echo           *echo.Echo
	JobRepo        *infraRepo.MemoryUploadJobRepository
	SnapshotCache  *MemorySnapshotCache
	StorageService *MockStorageService
	JWTService     *jwt.JWTService
	Container      *di.Container
}

// NewTestServer creates a fully configured test server
// PostgreSQL・Redis・MinIOなしで動くよう、インメモリ実装を注入します
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey: "test-secret-key-for-integration-000000",
			Issuer:    "gc-photos-test",
			Audience:  []string{"gc-photos-api-test"},
		},
		Upload: config.UploadConfig{
			URLExpiry:        15 * time.Minute,
			DownloadExpiry:   1 * time.Hour,
			MaxPhotosPerJob:  100,
			SweepInterval:    10 * time.Minute,
			SweepGracePeriod: 1 * time.Hour,
		},
	}

	jobRepo := infraRepo.NewMemoryUploadJobRepository()
	snapshotCache := NewMemorySnapshotCache()
	storageService := NewMockStorageService()

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		JobRepo:       jobRepo,
		SnapshotCache: snapshotCache,
	})
	require.NoError(t, err)
	container.InitUploadUseCases(storageService)

	handlers := di.NewHandlersForTest(container)
	middlewares := di.NewMiddlewares(container)

	// Echo instance
	e := echo.New()
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Setup routes
	router.NewRouter(e, handlers, middlewares).Setup()

	return &TestServer{
		Echo:           e,
		JobRepo:        jobRepo,
		SnapshotCache:  snapshotCache,
		StorageService: storageService,
		JWTService:     container.JWTService,
		Container:      container,
	}
}

// IssueToken issues an access token for the given user
func (ts *TestServer) IssueToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()

	token, err := ts.JWTService.GenerateAccessToken(userID, email)
	require.NoError(t, err)
	return token
}

// MemorySnapshotCache はJobSnapshotCacheのインメモリ実装です
type MemorySnapshotCache struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*query.UploadJobSnapshot
}

// NewMemorySnapshotCache は新しいMemorySnapshotCacheを作成します
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{
		snapshots: make(map[uuid.UUID]*query.UploadJobSnapshot),
	}
}

// Get はスナップショットを取得します。キャッシュミス時は(nil, nil)を返します
func (c *MemorySnapshotCache) Get(ctx context.Context, jobID uuid.UUID) (*query.UploadJobSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots[jobID], nil
}

// Set はスナップショットを保存します
func (c *MemorySnapshotCache) Set(ctx context.Context, snapshot *query.UploadJobSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.JobID] = snapshot
	return nil
}

// Len は保存されているスナップショット数を返します
func (c *MemorySnapshotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snapshots)
}
