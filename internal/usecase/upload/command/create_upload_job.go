package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/repository"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// PhotoInput はジョブ作成時の写真指定を定義します
type PhotoInput struct {
	FileName string
	MimeType string
	Size     int64
}

// CreateUploadJobInput はジョブ作成の入力を定義します
type CreateUploadJobInput struct {
	OwnerID uuid.UUID
	Photos  []PhotoInput
}

// PhotoUploadURL は写真ごとのアップロードURL情報を表します
type PhotoUploadURL struct {
	PhotoID   uuid.UUID
	FileName  string
	URL       string
	ExpiresAt time.Time
}

// CreateUploadJobOutput はジョブ作成の出力を定義します
type CreateUploadJobOutput struct {
	JobID      uuid.UUID
	Total      int
	UploadURLs []PhotoUploadURL
}

// CreateUploadJobCommand はアップロードジョブ作成コマンドです
type CreateUploadJobCommand struct {
	jobRepo        repository.UploadJobRepository
	storageService service.StorageService
	txManager      repository.TransactionManager
	urlExpiry      time.Duration
	maxPhotos      int
}

// NewCreateUploadJobCommand は新しいCreateUploadJobCommandを作成します
func NewCreateUploadJobCommand(
	jobRepo repository.UploadJobRepository,
	storageService service.StorageService,
	txManager repository.TransactionManager,
	urlExpiry time.Duration,
	maxPhotos int,
) *CreateUploadJobCommand {
	return &CreateUploadJobCommand{
		jobRepo:        jobRepo,
		storageService: storageService,
		txManager:      txManager,
		urlExpiry:      urlExpiry,
		maxPhotos:      maxPhotos,
	}
}

// Execute はアップロードジョブ作成を実行します
func (c *CreateUploadJobCommand) Execute(ctx context.Context, input CreateUploadJobInput) (*CreateUploadJobOutput, error) {
	// 1. 写真指定のバリデーション
	if len(input.Photos) == 0 {
		return nil, apperror.NewValidationError("upload job must contain at least one photo", nil)
	}
	if c.maxPhotos > 0 && len(input.Photos) > c.maxPhotos {
		return nil, apperror.NewValidationError("too many photos in one job", nil)
	}

	descriptors := make([]entity.PhotoDescriptor, 0, len(input.Photos))
	for _, p := range input.Photos {
		name, err := valueobject.NewPhotoName(p.FileName)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}

		mimeType, err := valueobject.NewMimeType(p.MimeType)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), nil)
		}

		descriptors = append(descriptors, entity.PhotoDescriptor{
			Name:     name,
			MimeType: mimeType,
			Size:     p.Size,
		})
	}

	// 2. ジョブを作成（写真はジョブ作成の一部として生成される）
	job, err := entity.NewUploadJob(input.OwnerID, descriptors)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}

	// 3. 写真ごとにPresigned PUT URLを発行
	// 永続化より先に発行する。ここで失敗してもまだ何も保存されていないため、
	// 呼び出し元がURLを受け取れないままジョブだけ残ることはない
	photos := job.Photos()
	uploadURLs := make([]PhotoUploadURL, 0, len(photos))
	for _, photo := range photos {
		putURL, err := c.storageService.GeneratePutURL(ctx, photo.StorageKey.String(), c.urlExpiry)
		if err != nil {
			return nil, apperror.NewInternalError(err)
		}
		uploadURLs = append(uploadURLs, PhotoUploadURL{
			PhotoID:   photo.ID,
			FileName:  photo.Name.String(),
			URL:       putURL.URL,
			ExpiresAt: putURL.ExpiresAt,
		})
	}

	// 4. トランザクションで保存（ジョブと写真を不可分に永続化）
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.jobRepo.Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	return &CreateUploadJobOutput{
		JobID:      job.ID,
		Total:      job.TotalCount(),
		UploadURLs: uploadURLs,
	}, nil
}
