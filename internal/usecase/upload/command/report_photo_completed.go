package command

import (
	"context"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
)

// ReportPhotoCompletedCommand は写真のアップロード完了レポートコマンドです
type ReportPhotoCompletedCommand struct {
	jobRepo   repository.UploadJobRepository
	txManager repository.TransactionManager
	locker    *JobLocker
}

// NewReportPhotoCompletedCommand は新しいReportPhotoCompletedCommandを作成します
func NewReportPhotoCompletedCommand(
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	locker *JobLocker,
) *ReportPhotoCompletedCommand {
	return &ReportPhotoCompletedCommand{
		jobRepo:   jobRepo,
		txManager: txManager,
		locker:    locker,
	}
}

// Execute はアップロード完了レポートを実行します
func (c *ReportPhotoCompletedCommand) Execute(ctx context.Context, input ReportTransitionInput) error {
	return applyAndSave(ctx, c.jobRepo, c.txManager, c.locker, input, (*entity.Photo).MarkCompleted)
}
