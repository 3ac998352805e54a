package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/command"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
	"github.com/Hiro-mackay/gc-photos/backend/tests/testutil/mocks"
)

type reportTestDeps struct {
	jobRepo   *mocks.MockUploadJobRepository
	txManager *mocks.MockTransactionManager
	locker    *command.JobLocker
}

func newReportTestDeps(t *testing.T) *reportTestDeps {
	t.Helper()
	return &reportTestDeps{
		jobRepo:   mocks.NewMockUploadJobRepository(t),
		txManager: mocks.NewMockTransactionManager(t),
		locker:    command.NewJobLocker(),
	}
}

// newJobWithPhotos は指定枚数のpending写真を持つジョブを作成します
func newJobWithPhotos(t *testing.T, ownerID uuid.UUID, count int) *entity.UploadJob {
	t.Helper()
	descriptors := make([]entity.PhotoDescriptor, 0, count)
	for i := 0; i < count; i++ {
		name, err := valueobject.NewPhotoName("vacation.jpg")
		require.NoError(t, err)
		mimeType, err := valueobject.NewMimeType("image/jpeg")
		require.NoError(t, err)
		descriptors = append(descriptors, entity.PhotoDescriptor{Name: name, MimeType: mimeType, Size: 2048})
	}
	job, err := entity.NewUploadJob(ownerID, descriptors)
	require.NoError(t, err)
	return job
}

func firstPhotoID(t *testing.T, job *entity.UploadJob) uuid.UUID {
	t.Helper()
	photos := job.Photos()
	require.NotEmpty(t, photos)
	return photos[0].ID
}

func TestReportPhotoStartedCommand_Execute_PendingPhoto_BecomesUploading(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 2)
	photoID := firstPhotoID(t, job)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.jobRepo.On("Update", ctx, job).Return(nil)

	cmd := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.NoError(t, err)
	photo, err := job.FindPhoto(photoID)
	require.NoError(t, err)
	assert.Equal(t, entity.PhotoStatusUploading, photo.Status)
	assert.NotNil(t, photo.UploadStartedAt)
	assert.Equal(t, entity.UploadJobStatusInProgress, job.Status())
}

func TestReportPhotoCompletedCommand_Execute_UploadingPhoto_BecomesCompleted(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)
	require.NoError(t, job.ApplyPhotoTransition(photoID, (*entity.Photo).MarkStarted))

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.jobRepo.On("Update", ctx, job).Return(nil)

	cmd := command.NewReportPhotoCompletedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.NoError(t, err)
	photo, err := job.FindPhoto(photoID)
	require.NoError(t, err)
	assert.Equal(t, entity.PhotoStatusCompleted, photo.Status)
	assert.Equal(t, entity.UploadJobStatusCompleted, job.Status())
	assert.Equal(t, 1, job.CompletedCount())
}

func TestReportPhotoFailedCommand_Execute_PendingPhoto_BecomesFailed(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.jobRepo.On("Update", ctx, job).Return(nil)

	cmd := command.NewReportPhotoFailedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.NoError(t, err)
	photo, err := job.FindPhoto(photoID)
	require.NoError(t, err)
	assert.Equal(t, entity.PhotoStatusFailed, photo.Status)
	assert.Equal(t, entity.UploadJobStatusFailed, job.Status())
	assert.Equal(t, 1, job.FailedCount())
}

func TestReportPhotoCompletedCommand_Execute_PendingPhoto_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	cmd := command.NewReportPhotoCompletedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// 失敗した遷移で状態が変わっていないこと
	photo, findErr := job.FindPhoto(photoID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.PhotoStatusPending, photo.Status)
	deps.jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReportPhotoStartedCommand_Execute_DuplicateReport_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)
	require.NoError(t, job.ApplyPhotoTransition(photoID, (*entity.Photo).MarkStarted))

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	cmd := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestReportPhotoStartedCommand_Execute_UnknownPhoto_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	cmd := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  uuid.New(),
		CallerID: ownerID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestReportPhotoStartedCommand_Execute_NotOwner_ReturnsForbidden(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	otherUserID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

	cmd := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: otherUserID,
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	photo, findErr := job.FindPhoto(photoID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.PhotoStatusPending, photo.Status)
}

func TestReportPhotoStartedCommand_Execute_JobNotFound_PropagatesError(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	deps := newReportTestDeps(t)
	notFoundErr := apperror.NewNotFoundError("upload job")

	deps.jobRepo.On("FindByID", ctx, jobID).Return(nil, notFoundErr)

	cmd := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    jobID,
		PhotoID:  uuid.New(),
		CallerID: uuid.New(),
	})

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestReportPhotoFailedCommand_Execute_UpdateError_PropagatesError(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 1)
	photoID := firstPhotoID(t, job)
	updateErr := errors.New("database connection failed")

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.jobRepo.On("Update", ctx, job).Return(updateErr)

	cmd := command.NewReportPhotoFailedCommand(deps.jobRepo, deps.txManager, deps.locker)
	err := cmd.Execute(ctx, command.ReportTransitionInput{
		JobID:    job.ID,
		PhotoID:  photoID,
		CallerID: ownerID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, updateErr)
}

func TestReportCommands_Execute_MixedOutcomes_DeriveAggregateStatus(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := newReportTestDeps(t)
	job := newJobWithPhotos(t, ownerID, 2)
	photos := job.Photos()

	deps.jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)
	deps.jobRepo.On("Update", ctx, job).Return(nil)

	started := command.NewReportPhotoStartedCommand(deps.jobRepo, deps.txManager, deps.locker)
	completed := command.NewReportPhotoCompletedCommand(deps.jobRepo, deps.txManager, deps.locker)
	failed := command.NewReportPhotoFailedCommand(deps.jobRepo, deps.txManager, deps.locker)

	// 1枚目: started -> completed
	require.NoError(t, started.Execute(ctx, command.ReportTransitionInput{JobID: job.ID, PhotoID: photos[0].ID, CallerID: ownerID}))
	require.NoError(t, completed.Execute(ctx, command.ReportTransitionInput{JobID: job.ID, PhotoID: photos[0].ID, CallerID: ownerID}))
	assert.Equal(t, entity.UploadJobStatusInProgress, job.Status())

	// 2枚目: pendingから直接failed
	require.NoError(t, failed.Execute(ctx, command.ReportTransitionInput{JobID: job.ID, PhotoID: photos[1].ID, CallerID: ownerID}))

	assert.Equal(t, entity.UploadJobStatusPartialFailure, job.Status())
	assert.Equal(t, 1, job.CompletedCount())
	assert.Equal(t, 1, job.FailedCount())
	assert.NotNil(t, job.CompletedAt())
}
