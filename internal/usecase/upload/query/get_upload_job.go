package query

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// GetUploadJobInput はジョブ照会の入力を定義します
type GetUploadJobInput struct {
	JobID  uuid.UUID
	UserID uuid.UUID
}

// GetUploadJobQuery はアップロードジョブ照会クエリです
type GetUploadJobQuery struct {
	jobRepo repository.UploadJobRepository
	cache   JobSnapshotCache
}

// NewGetUploadJobQuery は新しいGetUploadJobQueryを作成します
func NewGetUploadJobQuery(jobRepo repository.UploadJobRepository, cache JobSnapshotCache) *GetUploadJobQuery {
	return &GetUploadJobQuery{
		jobRepo: jobRepo,
		cache:   cache,
	}
}

// Execute はジョブのスナップショットを取得します
// 終端に達したジョブは不変なのでキャッシュから返せます。
// 進行中のジョブは常にリポジトリから読み出します
func (q *GetUploadJobQuery) Execute(ctx context.Context, input GetUploadJobInput) (*UploadJobSnapshot, error) {
	// 1. キャッシュ試行（終端ジョブのみ格納されている）
	if q.cache != nil {
		snapshot, err := q.cache.Get(ctx, input.JobID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to read upload job snapshot cache",
				slog.String("job_id", input.JobID.String()),
				slog.String("error", err.Error()))
		} else if snapshot != nil {
			if snapshot.OwnerID != input.UserID {
				return nil, apperror.NewForbiddenError("not authorized to view this upload job")
			}
			return snapshot, nil
		}
	}

	// 2. リポジトリから取得
	job, err := q.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	// 3. 所有者チェック
	if !job.IsOwnedBy(input.UserID) {
		return nil, apperror.NewForbiddenError("not authorized to view this upload job")
	}

	snapshot := SnapshotFromJob(job)

	// 4. 終端ジョブはキャッシュに格納（失敗しても照会は成功させる）
	if q.cache != nil && snapshot.Status.IsTerminal() {
		if err := q.cache.Set(ctx, snapshot); err != nil {
			slog.WarnContext(ctx, "Failed to write upload job snapshot cache",
				slog.String("job_id", input.JobID.String()),
				slog.String("error", err.Error()))
		}
	}

	return snapshot, nil
}
