package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
)

// PhotoSnapshot はジョブ照会時の写真の読み取り専用ビューです
type PhotoSnapshot struct {
	PhotoID         uuid.UUID          `json:"photo_id"`
	FileName        string             `json:"file_name"`
	MimeType        string             `json:"mime_type"`
	Size            int64              `json:"size"`
	Status          entity.PhotoStatus `json:"status"`
	StatusChangedAt time.Time          `json:"status_changed_at"`
}

// UploadJobSnapshot はジョブ全体の読み取り専用ビューです
// 終端ジョブのスナップショットは不変なのでそのままキャッシュできます
type UploadJobSnapshot struct {
	JobID       uuid.UUID              `json:"job_id"`
	OwnerID     uuid.UUID              `json:"owner_id"`
	Status      entity.UploadJobStatus `json:"status"`
	Total       int                    `json:"total"`
	Completed   int                    `json:"completed"`
	Failed      int                    `json:"failed"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Photos      []PhotoSnapshot        `json:"photos"`
}

// JobSnapshotCache は終端ジョブスナップショットのキャッシュポートです
// Getはキャッシュミス時に(nil, nil)を返します
type JobSnapshotCache interface {
	Get(ctx context.Context, jobID uuid.UUID) (*UploadJobSnapshot, error)
	Set(ctx context.Context, snapshot *UploadJobSnapshot) error
}

// SnapshotFromJob はUploadJobからスナップショットを構築します
func SnapshotFromJob(job *entity.UploadJob) *UploadJobSnapshot {
	photos := job.Photos()
	photoSnapshots := make([]PhotoSnapshot, 0, len(photos))
	for _, p := range photos {
		photoSnapshots = append(photoSnapshots, PhotoSnapshot{
			PhotoID:         p.ID,
			FileName:        p.Name.String(),
			MimeType:        p.MimeType.String(),
			Size:            p.Size,
			Status:          p.Status,
			StatusChangedAt: p.StatusChangedAt,
		})
	}

	return &UploadJobSnapshot{
		JobID:       job.ID,
		OwnerID:     job.OwnerID,
		Status:      job.Status(),
		Total:       job.TotalCount(),
		Completed:   job.CompletedCount(),
		Failed:      job.FailedCount(),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt(),
		CompletedAt: job.CompletedAt(),
		Photos:      photoSnapshots,
	}
}
