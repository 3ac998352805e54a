package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/database"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// UploadJobRepository はアップロードジョブリポジトリのPostgreSQL実装です
// ジョブと所属写真を1つの集約として読み書きします
type UploadJobRepository struct {
	*database.BaseRepository
}

// NewUploadJobRepository は新しいUploadJobRepositoryを作成します
func NewUploadJobRepository(txManager *database.TxManager) *UploadJobRepository {
	return &UploadJobRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

const insertJobSQL = `
INSERT INTO upload_jobs (id, owner_id, status, completed_count, failed_count, created_at, updated_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertPhotoSQL = `
INSERT INTO photos (id, job_id, owner_id, file_name, mime_type, size, storage_key, status, position, created_at, status_changed_at, upload_started_at, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// Create はジョブと写真を保存します
func (r *UploadJobRepository) Create(ctx context.Context, job *entity.UploadJob) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, insertJobSQL,
		job.ID, job.OwnerID, string(job.Status()),
		job.CompletedCount(), job.FailedCount(),
		job.CreatedAt, job.UpdatedAt(), job.CompletedAt(),
	)
	if err != nil {
		return r.HandleError(err)
	}

	batch := &pgx.Batch{}
	for i, photo := range job.Photos() {
		batch.Queue(insertPhotoSQL,
			photo.ID, photo.JobID, photo.OwnerID,
			photo.Name.String(), photo.MimeType.String(), photo.Size,
			photo.StorageKey.String(), string(photo.Status), i,
			photo.CreatedAt, photo.StatusChangedAt,
			photo.UploadStartedAt, photo.UploadedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range job.Photos() {
		if _, err := results.Exec(); err != nil {
			return r.HandleError(err)
		}
	}

	return nil
}

const selectJobSQL = `
SELECT id, owner_id, status, completed_count, failed_count, created_at, updated_at, completed_at
FROM upload_jobs
WHERE id = $1`

const selectPhotosSQL = `
SELECT id, job_id, owner_id, file_name, mime_type, size, storage_key, status, created_at, status_changed_at, upload_started_at, uploaded_at
FROM photos
WHERE job_id = $1
ORDER BY position`

// FindByID はIDでジョブを検索します
func (r *UploadJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UploadJob, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, selectJobSQL, id)
	jobRow, err := scanJobRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("upload job")
		}
		return nil, r.HandleError(err)
	}

	rows, err := querier.Query(ctx, selectPhotosSQL, id)
	if err != nil {
		return nil, r.HandleError(err)
	}
	photos, err := scanPhotos(rows)
	if err != nil {
		return nil, r.HandleError(err)
	}

	return jobRow.toEntity(photos)
}

const updateJobSQL = `
UPDATE upload_jobs
SET status = $2, completed_count = $3, failed_count = $4, updated_at = $5, completed_at = $6
WHERE id = $1`

const updatePhotoSQL = `
UPDATE photos
SET status = $2, status_changed_at = $3, upload_started_at = $4, uploaded_at = $5
WHERE id = $1`

// Update はジョブと写真の状態を保存します
// 写真の構成はジョブ作成後に変わらないため、可変な列のみ更新します
func (r *UploadJobRepository) Update(ctx context.Context, job *entity.UploadJob) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, updateJobSQL,
		job.ID, string(job.Status()),
		job.CompletedCount(), job.FailedCount(),
		job.UpdatedAt(), job.CompletedAt(),
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("upload job")
	}

	for _, photo := range job.Photos() {
		_, err := querier.Exec(ctx, updatePhotoSQL,
			photo.ID, string(photo.Status),
			photo.StatusChangedAt, photo.UploadStartedAt, photo.UploadedAt,
		)
		if err != nil {
			return r.HandleError(err)
		}
	}

	return nil
}

const selectJobsByOwnerSQL = `
SELECT id, owner_id, status, completed_count, failed_count, created_at, updated_at, completed_at
FROM upload_jobs
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

// FindByOwner は所有者のジョブを新しい順で検索します
func (r *UploadJobRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.UploadJob, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, selectJobsByOwnerSQL, ownerID, limit, offset)
	if err != nil {
		return nil, r.HandleError(err)
	}
	jobRows, err := scanJobRows(rows)
	if err != nil {
		return nil, r.HandleError(err)
	}

	return r.loadJobs(ctx, jobRows)
}

const countJobsByOwnerSQL = `
SELECT COUNT(*) FROM upload_jobs WHERE owner_id = $1`

// CountByOwner は所有者のジョブ数を返します
func (r *UploadJobRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	querier := r.Querier(ctx)

	var count int
	if err := querier.QueryRow(ctx, countJobsByOwnerSQL, ownerID).Scan(&count); err != nil {
		return 0, r.HandleError(err)
	}
	return count, nil
}

const selectStaleJobsSQL = `
SELECT id, owner_id, status, completed_count, failed_count, created_at, updated_at, completed_at
FROM upload_jobs
WHERE status = 'in_progress' AND created_at < $1
ORDER BY created_at`

// FindStale は指定時刻より前に作成され、まだ進行中のジョブを検索します
func (r *UploadJobRepository) FindStale(ctx context.Context, createdBefore time.Time) ([]*entity.UploadJob, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, selectStaleJobsSQL, createdBefore)
	if err != nil {
		return nil, r.HandleError(err)
	}
	jobRows, err := scanJobRows(rows)
	if err != nil {
		return nil, r.HandleError(err)
	}

	return r.loadJobs(ctx, jobRows)
}

// loadJobs はジョブ行に写真を読み込んでエンティティへ変換します
func (r *UploadJobRepository) loadJobs(ctx context.Context, jobRows []jobRow) ([]*entity.UploadJob, error) {
	querier := r.Querier(ctx)

	jobs := make([]*entity.UploadJob, 0, len(jobRows))
	for _, row := range jobRows {
		rows, err := querier.Query(ctx, selectPhotosSQL, row.id)
		if err != nil {
			return nil, r.HandleError(err)
		}
		photos, err := scanPhotos(rows)
		if err != nil {
			return nil, r.HandleError(err)
		}

		job, err := row.toEntity(photos)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// jobRow はupload_jobsテーブルの1行です
type jobRow struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	status      string
	completed   int
	failed      int
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

func scanJobRow(row pgx.Row) (jobRow, error) {
	var jr jobRow
	err := row.Scan(&jr.id, &jr.ownerID, &jr.status, &jr.completed, &jr.failed, &jr.createdAt, &jr.updatedAt, &jr.completedAt)
	return jr, err
}

func scanJobRows(rows pgx.Rows) ([]jobRow, error) {
	defer rows.Close()

	var jobRows []jobRow
	for rows.Next() {
		var jr jobRow
		if err := rows.Scan(&jr.id, &jr.ownerID, &jr.status, &jr.completed, &jr.failed, &jr.createdAt, &jr.updatedAt, &jr.completedAt); err != nil {
			return nil, err
		}
		jobRows = append(jobRows, jr)
	}
	return jobRows, rows.Err()
}

func (jr jobRow) toEntity(photos []*entity.Photo) (*entity.UploadJob, error) {
	job, err := entity.ReconstructUploadJob(
		jr.id, jr.ownerID, photos,
		entity.UploadJobStatus(jr.status),
		jr.completed, jr.failed,
		jr.createdAt, jr.updatedAt, jr.completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct upload job %s: %w", jr.id, err)
	}
	return job, nil
}

func scanPhotos(rows pgx.Rows) ([]*entity.Photo, error) {
	defer rows.Close()

	var photos []*entity.Photo
	for rows.Next() {
		var (
			id, jobID, ownerID                   uuid.UUID
			fileName, mimeTypeStr, storageKeyStr string
			size                                 int64
			status                               string
			createdAt, statusChangedAt           time.Time
			uploadStartedAt, uploadedAt          *time.Time
		)
		err := rows.Scan(&id, &jobID, &ownerID, &fileName, &mimeTypeStr, &size, &storageKeyStr, &status, &createdAt, &statusChangedAt, &uploadStartedAt, &uploadedAt)
		if err != nil {
			return nil, err
		}

		name := valueobject.ReconstructPhotoName(fileName)
		mimeType := valueobject.ReconstructMimeType(mimeTypeStr)
		storageKey, err := valueobject.ReconstructStorageKey(storageKeyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid storage key for photo %s: %w", id, err)
		}

		photos = append(photos, entity.ReconstructPhoto(
			id, jobID, ownerID, name, mimeType, size, storageKey,
			entity.PhotoStatus(status), createdAt, statusChangedAt,
			uploadStartedAt, uploadedAt,
		))
	}
	return photos, rows.Err()
}
