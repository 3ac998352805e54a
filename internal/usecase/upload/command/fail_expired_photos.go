package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
)

// FailExpiredPhotosCommand は期限切れアップロードの失敗処理コマンドです
//
// 署名付きURLの有効期限を過ぎても完了報告のない写真をfailedに遷移させ、
// 放置されたジョブが永久にin_progressのまま残らないようにします。
// failedに倒した写真のオブジェクトはストレージからも削除します
// （報告されないまま書き込まれた中途半端なオブジェクトを回収するため）。
type FailExpiredPhotosCommand struct {
	jobRepo        repository.UploadJobRepository
	txManager      repository.TransactionManager
	storageService service.StorageService
	locker         *JobLocker
	gracePeriod    time.Duration
}

// NewFailExpiredPhotosCommand は新しいFailExpiredPhotosCommandを作成します
func NewFailExpiredPhotosCommand(
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	storageService service.StorageService,
	locker *JobLocker,
	gracePeriod time.Duration,
) *FailExpiredPhotosCommand {
	return &FailExpiredPhotosCommand{
		jobRepo:        jobRepo,
		txManager:      txManager,
		storageService: storageService,
		locker:         locker,
		gracePeriod:    gracePeriod,
	}
}

// FailExpiredPhotosOutput は失敗処理の結果です
type FailExpiredPhotosOutput struct {
	JobsSwept    int
	PhotosFailed int
}

// Execute は期限切れ写真の失敗処理を実行します
func (c *FailExpiredPhotosCommand) Execute(ctx context.Context) (*FailExpiredPhotosOutput, error) {
	cutoff := time.Now().Add(-c.gracePeriod)

	staleJobs, err := c.jobRepo.FindStale(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	output := &FailExpiredPhotosOutput{}

	for _, stale := range staleJobs {
		failed, err := c.sweepJob(ctx, stale.ID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to sweep expired upload job",
				slog.String("job_id", stale.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if failed > 0 {
			output.JobsSwept++
			output.PhotosFailed += failed
		}
	}

	return output, nil
}

// sweepJob は単一ジョブの未完了写真をすべてfailedに遷移させます
func (c *FailExpiredPhotosCommand) sweepJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	c.locker.Lock(jobID)
	defer c.locker.Unlock(jobID)

	job, err := c.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return 0, err
	}

	var sweptKeys []string
	for _, photo := range job.Photos() {
		if photo.IsTerminal() {
			continue
		}
		if err := job.ApplyPhotoTransition(photo.ID, (*entity.Photo).MarkFailed); err != nil {
			// 別リクエストと競合して先に遷移済みの場合は無視する
			if errors.Is(err, entity.ErrInvalidTransition) {
				continue
			}
			return len(sweptKeys), err
		}
		sweptKeys = append(sweptKeys, photo.StorageKey.String())
	}

	if len(sweptKeys) == 0 {
		return 0, nil
	}

	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.jobRepo.Update(ctx, job)
	})
	if err != nil {
		return len(sweptKeys), err
	}

	// 遷移を確定させてからオブジェクトを回収する。削除に失敗しても
	// 写真はすでにfailedなので掃除結果は覆さない
	if err := c.storageService.DeleteObjects(ctx, sweptKeys); err != nil {
		slog.WarnContext(ctx, "Failed to delete swept upload objects",
			slog.String("job_id", jobID.String()),
			slog.String("error", err.Error()))
	}

	return len(sweptKeys), nil
}
