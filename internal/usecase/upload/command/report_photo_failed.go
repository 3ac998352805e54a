package command

import (
	"context"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
)

// ReportPhotoFailedCommand は写真のアップロード失敗レポートコマンドです
type ReportPhotoFailedCommand struct {
	jobRepo   repository.UploadJobRepository
	txManager repository.TransactionManager
	locker    *JobLocker
}

// NewReportPhotoFailedCommand は新しいReportPhotoFailedCommandを作成します
func NewReportPhotoFailedCommand(
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	locker *JobLocker,
) *ReportPhotoFailedCommand {
	return &ReportPhotoFailedCommand{
		jobRepo:   jobRepo,
		txManager: txManager,
		locker:    locker,
	}
}

// Execute はアップロード失敗レポートを実行します
func (c *ReportPhotoFailedCommand) Execute(ctx context.Context, input ReportTransitionInput) error {
	return applyAndSave(ctx, c.jobRepo, c.txManager, c.locker, input, (*entity.Photo).MarkFailed)
}
