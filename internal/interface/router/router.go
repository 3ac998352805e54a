package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/di"
	"github.com/Hiro-mackay/gc-photos/backend/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	// Debug route
	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "GC Photos API v1",
		})
	})

	r.setupUploadRoutes(api)
}

// setupUploadRoutes はアップロードジョブ関連ルートを設定します
func (r *Router) setupUploadRoutes(api *echo.Group) {
	jobsGroup := api.Group("/photos/jobs", r.middlewares.JWTAuth.Authenticate())

	// Job routes
	jobsGroup.POST("", r.handlers.UploadJob.CreateJob)
	jobsGroup.GET("", r.handlers.UploadJob.ListJobs)
	jobsGroup.GET("/:jobId", r.handlers.UploadJob.GetJob)

	// Per-photo transition reports
	jobsGroup.POST("/:jobId/photos/:photoId/started", r.handlers.UploadJob.ReportStarted)
	jobsGroup.POST("/:jobId/photos/:photoId/completed", r.handlers.UploadJob.ReportCompleted)
	jobsGroup.POST("/:jobId/photos/:photoId/failed", r.handlers.UploadJob.ReportFailed)

	// Download URL for a completed photo
	jobsGroup.GET("/:jobId/photos/:photoId/download-url", r.handlers.UploadJob.GetDownloadURL)
}
