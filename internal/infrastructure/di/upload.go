package di

import (
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
	uploadcmd "github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/command"
	uploadqry "github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/config"
)

// UploadUseCases はUpload関連のUseCaseを保持します
type UploadUseCases struct {
	// Commands
	CreateJob       *uploadcmd.CreateUploadJobCommand
	ReportStarted   *uploadcmd.ReportPhotoStartedCommand
	ReportCompleted *uploadcmd.ReportPhotoCompletedCommand
	ReportFailed    *uploadcmd.ReportPhotoFailedCommand
	FailExpired     *uploadcmd.FailExpiredPhotosCommand

	// Queries
	GetJob         *uploadqry.GetUploadJobQuery
	ListJobs       *uploadqry.ListUploadJobsQuery
	GetDownloadURL *uploadqry.GetPhotoDownloadURLQuery
}

// NewUploadUseCases は新しいUploadUseCasesを作成します
// 遷移レポート系コマンドはジョブ単位の直列化のため同一のJobLockerを共有します
func NewUploadUseCases(
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	storageService service.StorageService,
	snapshotCache uploadqry.JobSnapshotCache,
	cfg config.UploadConfig,
) *UploadUseCases {
	locker := uploadcmd.NewJobLocker()

	return &UploadUseCases{
		// Commands
		CreateJob:       uploadcmd.NewCreateUploadJobCommand(jobRepo, storageService, txManager, cfg.URLExpiry, cfg.MaxPhotosPerJob),
		ReportStarted:   uploadcmd.NewReportPhotoStartedCommand(jobRepo, txManager, locker),
		ReportCompleted: uploadcmd.NewReportPhotoCompletedCommand(jobRepo, txManager, locker),
		ReportFailed:    uploadcmd.NewReportPhotoFailedCommand(jobRepo, txManager, locker),
		FailExpired:     uploadcmd.NewFailExpiredPhotosCommand(jobRepo, txManager, storageService, locker, cfg.URLExpiry+cfg.SweepGracePeriod),

		// Queries
		GetJob:         uploadqry.NewGetUploadJobQuery(jobRepo, snapshotCache),
		ListJobs:       uploadqry.NewListUploadJobsQuery(jobRepo),
		GetDownloadURL: uploadqry.NewGetPhotoDownloadURLQuery(jobRepo, storageService, cfg.DownloadExpiry),
	}
}
