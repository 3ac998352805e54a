package command

import (
	"context"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
)

// ReportPhotoStartedCommand は写真のアップロード開始レポートコマンドです
type ReportPhotoStartedCommand struct {
	jobRepo   repository.UploadJobRepository
	txManager repository.TransactionManager
	locker    *JobLocker
}

// NewReportPhotoStartedCommand は新しいReportPhotoStartedCommandを作成します
func NewReportPhotoStartedCommand(
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	locker *JobLocker,
) *ReportPhotoStartedCommand {
	return &ReportPhotoStartedCommand{
		jobRepo:   jobRepo,
		txManager: txManager,
		locker:    locker,
	}
}

// Execute はアップロード開始レポートを実行します
func (c *ReportPhotoStartedCommand) Execute(ctx context.Context, input ReportTransitionInput) error {
	return applyAndSave(ctx, c.jobRepo, c.txManager, c.locker, input, (*entity.Photo).MarkStarted)
}
