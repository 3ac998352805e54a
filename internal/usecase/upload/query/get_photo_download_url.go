package query

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// GetPhotoDownloadURLInput はダウンロードURL取得の入力を定義します
type GetPhotoDownloadURLInput struct {
	JobID   uuid.UUID
	PhotoID uuid.UUID
	UserID  uuid.UUID
}

// GetPhotoDownloadURLOutput はダウンロードURL取得の出力を定義します
type GetPhotoDownloadURLOutput struct {
	PhotoID     uuid.UUID
	FileName    string
	MimeType    string
	Size        int64
	DownloadURL string
	ExpiresAt   time.Time
}

// GetPhotoDownloadURLQuery は写真ダウンロードURL取得クエリです
type GetPhotoDownloadURLQuery struct {
	jobRepo        repository.UploadJobRepository
	storageService service.StorageService
	urlExpiry      time.Duration
}

// NewGetPhotoDownloadURLQuery は新しいGetPhotoDownloadURLQueryを作成します
func NewGetPhotoDownloadURLQuery(
	jobRepo repository.UploadJobRepository,
	storageService service.StorageService,
	urlExpiry time.Duration,
) *GetPhotoDownloadURLQuery {
	return &GetPhotoDownloadURLQuery{
		jobRepo:        jobRepo,
		storageService: storageService,
		urlExpiry:      urlExpiry,
	}
}

// Execute は完了済み写真のPresigned GET URLを発行します
// アップロードが完了していない写真のオブジェクトは存在が保証されないため拒否します
func (q *GetPhotoDownloadURLQuery) Execute(ctx context.Context, input GetPhotoDownloadURLInput) (*GetPhotoDownloadURLOutput, error) {
	// 1. ジョブ取得
	job, err := q.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	// 2. 所有者チェック
	if !job.IsOwnedBy(input.UserID) {
		return nil, apperror.NewForbiddenError("not authorized to access this upload job")
	}

	// 3. 写真取得
	photo, err := job.FindPhoto(input.PhotoID)
	if err != nil {
		if errors.Is(err, entity.ErrPhotoNotFound) {
			return nil, apperror.NewNotFoundError("photo")
		}
		return nil, err
	}

	// 4. 完了済みのみダウンロード可能
	if !photo.IsCompleted() {
		return nil, apperror.NewConflictError("photo upload is not completed")
	}

	// 5. Presigned GET URL発行
	presigned, err := q.storageService.GenerateGetURL(ctx, photo.StorageKey.String(), q.urlExpiry)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &GetPhotoDownloadURLOutput{
		PhotoID:     photo.ID,
		FileName:    photo.Name.String(),
		MimeType:    photo.MimeType.String(),
		Size:        photo.Size,
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
	}, nil
}
