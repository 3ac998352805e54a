package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListUploadJobsInput はジョブ一覧の入力を定義します
type ListUploadJobsInput struct {
	UserID   uuid.UUID
	Page     int // 1始まり。0以下はページ1として扱う
	PageSize int // 0以下はデフォルト、上限超過は上限に丸める
}

// UploadJobSummary は一覧用のジョブ概要です（写真の詳細は含まない）
type UploadJobSummary struct {
	JobID       uuid.UUID
	Status      entity.UploadJobStatus
	Total       int
	Completed   int
	Failed      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// ListUploadJobsOutput はジョブ一覧の出力を定義します
type ListUploadJobsOutput struct {
	Jobs       []UploadJobSummary
	TotalCount int
	Page       int
	PageSize   int
}

// ListUploadJobsQuery はアップロードジョブ一覧クエリです
type ListUploadJobsQuery struct {
	jobRepo repository.UploadJobRepository
}

// NewListUploadJobsQuery は新しいListUploadJobsQueryを作成します
func NewListUploadJobsQuery(jobRepo repository.UploadJobRepository) *ListUploadJobsQuery {
	return &ListUploadJobsQuery{
		jobRepo: jobRepo,
	}
}

// Execute は呼び出しユーザーのジョブ一覧を新しい順で取得します
func (q *ListUploadJobsQuery) Execute(ctx context.Context, input ListUploadJobsInput) (*ListUploadJobsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	totalCount, err := q.jobRepo.CountByOwner(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	jobs, err := q.jobRepo.FindByOwner(ctx, input.UserID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]UploadJobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, UploadJobSummary{
			JobID:       job.ID,
			Status:      job.Status(),
			Total:       job.TotalCount(),
			Completed:   job.CompletedCount(),
			Failed:      job.FailedCount(),
			CreatedAt:   job.CreatedAt,
			UpdatedAt:   job.UpdatedAt(),
			CompletedAt: job.CompletedAt(),
		})
	}

	return &ListUploadJobsOutput{
		Jobs:       summaries,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
