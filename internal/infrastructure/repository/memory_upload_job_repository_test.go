package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/repository"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

func newTestJob(t *testing.T, ownerID uuid.UUID, count int) *entity.UploadJob {
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

func TestMemoryUploadJobRepository_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	job := newTestJob(t, uuid.New(), 2)

	require.NoError(t, repo.Create(ctx, job))

	found, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, found.ID)
	assert.Equal(t, 2, found.TotalCount())
}

func TestMemoryUploadJobRepository_Create_Duplicate_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	job := newTestJob(t, uuid.New(), 1)

	require.NoError(t, repo.Create(ctx, job))
	err := repo.Create(ctx, job)

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestMemoryUploadJobRepository_FindByID_Unknown_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()

	found, err := repo.FindByID(ctx, uuid.New())

	require.Error(t, err)
	assert.Nil(t, found)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestMemoryUploadJobRepository_Update_Unknown_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	job := newTestJob(t, uuid.New(), 1)

	err := repo.Update(ctx, job)

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestMemoryUploadJobRepository_FindByOwner_PaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	ownerID := uuid.New()

	jobs := make([]*entity.UploadJob, 0, 3)
	for i := 0; i < 3; i++ {
		job := newTestJob(t, ownerID, 1)
		require.NoError(t, repo.Create(ctx, job))
		jobs = append(jobs, job)
		time.Sleep(time.Millisecond)
	}
	// 別ユーザーのジョブは含まれない
	require.NoError(t, repo.Create(ctx, newTestJob(t, uuid.New(), 1)))

	found, err := repo.FindByOwner(ctx, ownerID, 2, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, jobs[2].ID, found[0].ID)
	assert.Equal(t, jobs[1].ID, found[1].ID)

	rest, err := repo.FindByOwner(ctx, ownerID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, jobs[0].ID, rest[0].ID)

	empty, err := repo.FindByOwner(ctx, ownerID, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	count, err := repo.CountByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryUploadJobRepository_FindStale_ReturnsOnlyOldInProgressJobs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	ownerID := uuid.New()

	inProgress := newTestJob(t, ownerID, 1)
	require.NoError(t, repo.Create(ctx, inProgress))

	terminal := newTestJob(t, ownerID, 1)
	require.NoError(t, terminal.ApplyPhotoTransition(terminal.Photos()[0].ID, (*entity.Photo).MarkFailed))
	require.NoError(t, repo.Create(ctx, terminal))

	stale, err := repo.FindStale(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, inProgress.ID, stale[0].ID)

	// カットオフより後に作成されたジョブは対象外
	none, err := repo.FindStale(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryUploadJobRepository_ConcurrentTransitions_NoLostUpdates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUploadJobRepository()
	ownerID := uuid.New()
	job := newTestJob(t, ownerID, 100)
	require.NoError(t, repo.Create(ctx, job))

	photos := job.Photos()
	var wg sync.WaitGroup
	for i, photo := range photos {
		wg.Add(1)
		go func(i int, photoID uuid.UUID) {
			defer wg.Done()
			loaded, err := repo.FindByID(ctx, job.ID)
			if err != nil {
				t.Error(err)
				return
			}
			if i%2 == 0 {
				_ = loaded.ApplyPhotoTransition(photoID, (*entity.Photo).MarkStarted)
				_ = loaded.ApplyPhotoTransition(photoID, (*entity.Photo).MarkCompleted)
			} else {
				_ = loaded.ApplyPhotoTransition(photoID, (*entity.Photo).MarkFailed)
			}
			_ = repo.Update(ctx, loaded)
		}(i, photo.ID)
	}
	wg.Wait()

	final, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, final.CompletedCount())
	assert.Equal(t, 50, final.FailedCount())
	assert.Equal(t, entity.UploadJobStatusPartialFailure, final.Status())
}
