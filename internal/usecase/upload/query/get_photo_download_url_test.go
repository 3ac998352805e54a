package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
	"github.com/Hiro-mackay/gc-photos/backend/tests/testutil/mocks"
)

const testDownloadExpiry = 1 * time.Hour

type downloadURLTestDeps struct {
	jobRepo        *mocks.MockUploadJobRepository
	storageService *mocks.MockStorageService
}

func newDownloadURLTestDeps(t *testing.T) *downloadURLTestDeps {
	t.Helper()
	return &downloadURLTestDeps{
		jobRepo:        mocks.NewMockUploadJobRepository(t),
		storageService: mocks.NewMockStorageService(t),
	}
}

func (d *downloadURLTestDeps) newQuery() *query.GetPhotoDownloadURLQuery {
	return query.NewGetPhotoDownloadURLQuery(d.jobRepo, d.storageService, testDownloadExpiry)
}

func TestGetPhotoDownloadURLQuery_Execute_CompletedPhoto_ReturnsPresignedURL(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)
	completeAllPhotos(t, job)
	photo := job.Photos()[0]
	presigned := &service.PresignedURL{
		URL:       "https://minio.example.com/presigned-get",
		ExpiresAt: time.Now().Add(testDownloadExpiry),
	}

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.storageService.On("GenerateGetURL", ctx, photo.StorageKey.String(), testDownloadExpiry).Return(presigned, nil)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: photo.ID,
		UserID:  ownerID,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, photo.ID, output.PhotoID)
	assert.Equal(t, "vacation.jpg", output.FileName)
	assert.Equal(t, "image/jpeg", output.MimeType)
	assert.Equal(t, photo.Size, output.Size)
	assert.Equal(t, presigned.URL, output.DownloadURL)
	assert.Equal(t, presigned.ExpiresAt, output.ExpiresAt)
}

func TestGetPhotoDownloadURLQuery_Execute_PendingPhoto_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)
	photo := job.Photos()[0]

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: photo.ID,
		UserID:  ownerID,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestGetPhotoDownloadURLQuery_Execute_FailedPhoto_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)
	photo := job.Photos()[0]
	require.NoError(t, job.ApplyPhotoTransition(photo.ID, (*entity.Photo).MarkFailed))

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: photo.ID,
		UserID:  ownerID,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestGetPhotoDownloadURLQuery_Execute_UnknownPhoto_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: uuid.New(),
		UserID:  ownerID,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestGetPhotoDownloadURLQuery_Execute_NotOwner_ReturnsForbidden(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)
	completeAllPhotos(t, job)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: job.Photos()[0].ID,
		UserID:  uuid.New(),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestGetPhotoDownloadURLQuery_Execute_StorageServiceError_ReturnsInternalError(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newDownloadURLTestDeps(t)
	job := newJobForQuery(t, ownerID, 1)
	completeAllPhotos(t, job)
	photo := job.Photos()[0]
	storageErr := errors.New("storage connection failed")

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.storageService.On("GenerateGetURL", ctx, photo.StorageKey.String(), testDownloadExpiry).Return(nil, storageErr)

	q := deps.newQuery()
	output, err := q.Execute(ctx, query.GetPhotoDownloadURLInput{
		JobID:   job.ID,
		PhotoID: photo.ID,
		UserID:  ownerID,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInternalError, appErr.Code)
}
