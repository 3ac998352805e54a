package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// ReportTransitionInput は写真ステータスレポートの入力を定義します
type ReportTransitionInput struct {
	JobID    uuid.UUID
	PhotoID  uuid.UUID
	CallerID uuid.UUID
}

// applyAndSave はジョブをロードし、指定写真に遷移を適用して保存します
// ジョブ単位のロックで読み出しから保存までを直列化することで、
// 再構築されたジョブインスタンス同士のカウンタ競合を防ぎます
func applyAndSave(
	ctx context.Context,
	jobRepo repository.UploadJobRepository,
	txManager repository.TransactionManager,
	locker *JobLocker,
	input ReportTransitionInput,
	transition func(*entity.Photo) error,
) error {
	locker.Lock(input.JobID)
	defer locker.Unlock(input.JobID)

	job, err := jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return err
	}

	if !job.IsOwnedBy(input.CallerID) {
		return apperror.NewForbiddenError("not authorized to report on this upload job")
	}

	if err := job.ApplyPhotoTransition(input.PhotoID, transition); err != nil {
		return mapTransitionError(err)
	}

	return txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return jobRepo.Update(ctx, job)
	})
}

// mapTransitionError はドメインエラーをアプリケーションエラーへ変換します
func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, entity.ErrPhotoNotFound):
		return apperror.NewNotFoundError("photo")
	case errors.Is(err, entity.ErrInvalidTransition):
		// 重複・遅延レポートによる想定内の競合。呼び出し側で回復可能
		return apperror.NewConflictError("photo status transition is not allowed from its current state")
	default:
		return err
	}
}
