package di

import (
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health    *handler.HealthHandler
	UploadJob *handler.UploadJobHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	return &Handlers{
		Health:    healthHandler,
		UploadJob: newUploadJobHandler(c),
	}
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	return &Handlers{
		Health:    nil, // テストではHealthHandlerは不要
		UploadJob: newUploadJobHandler(c),
	}
}

func newUploadJobHandler(c *Container) *handler.UploadJobHandler {
	return handler.NewUploadJobHandler(
		c.Upload.CreateJob,
		c.Upload.ReportStarted,
		c.Upload.ReportCompleted,
		c.Upload.ReportFailed,
		c.Upload.GetJob,
		c.Upload.ListJobs,
		c.Upload.GetDownloadURL,
	)
}
