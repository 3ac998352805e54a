package entity

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
)

// アップロードジョブステータス
type UploadJobStatus string

const (
	UploadJobStatusInProgress     UploadJobStatus = "in_progress"
	UploadJobStatusCompleted      UploadJobStatus = "completed"
	UploadJobStatusFailed         UploadJobStatus = "failed"
	UploadJobStatusPartialFailure UploadJobStatus = "partial_failure"
)

// IsTerminal は終端ステータスかどうかを判定します
func (s UploadJobStatus) IsTerminal() bool {
	switch s {
	case UploadJobStatusCompleted, UploadJobStatusFailed, UploadJobStatusPartialFailure:
		return true
	}
	return false
}

// アップロードジョブ関連エラー
var (
	ErrEmptyUploadJob = errors.New("upload job must contain at least one photo")
	ErrPhotoNotFound  = errors.New("photo not found in upload job")
)

// PhotoDescriptor はジョブ作成時の写真指定を表します
type PhotoDescriptor struct {
	Name     valueobject.PhotoName
	MimeType valueobject.MimeType
	Size     int64
}

// UploadJob は一括アップロードの集約ルートエンティティ
// 写真の所属は作成時に固定され、以後追加も削除もされません。
// ステータスとカウンタは写真の状態から導出される値であり、外部から
// 直接設定することはできません。可変状態はすべてジョブ内部のミューテックスで
// 保護され、変更はApplyPhotoTransition経由でのみ行えます
type UploadJob struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	CreatedAt time.Time

	mu          sync.Mutex
	photos      []*Photo
	status      UploadJobStatus
	completed   int
	failed      int
	updatedAt   time.Time
	completedAt *time.Time
}

// NewUploadJob は新しいUploadJobを作成します
// 写真はジョブ作成の一部としてのみ生成されます。descriptorsが空の場合は
// ErrEmptyUploadJobで失敗します
func NewUploadJob(ownerID uuid.UUID, descriptors []PhotoDescriptor) (*UploadJob, error) {
	if len(descriptors) == 0 {
		return nil, ErrEmptyUploadJob
	}

	jobID := uuid.New()
	now := time.Now()

	photos := make([]*Photo, 0, len(descriptors))
	for _, d := range descriptors {
		photo, err := NewPhoto(jobID, ownerID, d.Name, d.MimeType, d.Size)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return &UploadJob{
		ID:        jobID,
		OwnerID:   ownerID,
		CreatedAt: now,
		photos:    photos,
		status:    UploadJobStatusInProgress,
		updatedAt: now,
	}, nil
}

// ReconstructUploadJob はDBからUploadJobを復元します
// 写真ゼロのジョブはストレージ破損を示すため、新規作成時と同様に拒否します
func ReconstructUploadJob(
	id uuid.UUID,
	ownerID uuid.UUID,
	photos []*Photo,
	status UploadJobStatus,
	completed int,
	failed int,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*UploadJob, error) {
	if len(photos) == 0 {
		return nil, ErrEmptyUploadJob
	}

	return &UploadJob{
		ID:          id,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		photos:      photos,
		status:      status,
		completed:   completed,
		failed:      failed,
		updatedAt:   updatedAt,
		completedAt: completedAt,
	}, nil
}

// ApplyPhotoTransition は指定写真に遷移を適用し、ジョブのステータスと
// カウンタを再計算します。写真がこのジョブに属していなければ
// ErrPhotoNotFound、遷移が不正ならErrInvalidTransitionを返し、
// どちらの場合もジョブの状態は一切変化しません。
// 同一ジョブに対する呼び出しは内部ミューテックスで直列化されます
func (j *UploadJob) ApplyPhotoTransition(photoID uuid.UUID, transition func(*Photo) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	photo := j.findPhoto(photoID)
	if photo == nil {
		return ErrPhotoNotFound
	}

	if err := transition(photo); err != nil {
		return err
	}

	j.recompute()
	return nil
}

// recompute は写真の状態からステータスとカウンタを導出して反映します
// 呼び出し側がミューテックスを保持している必要があります
func (j *UploadJob) recompute() {
	progress := ComputeJobProgress(j.photos)

	wasTerminal := j.status.IsTerminal()
	now := time.Now()

	j.status = progress.Status
	j.completed = progress.Completed
	j.failed = progress.Failed
	j.updatedAt = now

	// completedAtは終端到達時に一度だけ設定し、以後上書きしない
	if progress.Status.IsTerminal() && !wasTerminal && j.completedAt == nil {
		j.completedAt = &now
	}
}

// findPhoto はジョブ内の写真をIDで検索します
func (j *UploadJob) findPhoto(photoID uuid.UUID) *Photo {
	for _, p := range j.photos {
		if p.ID == photoID {
			return p
		}
	}
	return nil
}

// Photos は写真の読み取り専用ビューを返します
// 返されるスライスと要素は複製であり、変更してもジョブには影響しません
func (j *UploadJob) Photos() []*Photo {
	j.mu.Lock()
	defer j.mu.Unlock()

	photos := make([]*Photo, len(j.photos))
	for i, p := range j.photos {
		photos[i] = p.clone()
	}
	return photos
}

// FindPhoto は写真の複製をIDで取得します
func (j *UploadJob) FindPhoto(photoID uuid.UUID) (*Photo, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	photo := j.findPhoto(photoID)
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	return photo.clone(), nil
}

// Status は導出ステータスを返します
func (j *UploadJob) Status() UploadJobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// CompletedCount は完了写真数を返します
func (j *UploadJob) CompletedCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.completed
}

// FailedCount は失敗写真数を返します
func (j *UploadJob) FailedCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.failed
}

// TotalCount は写真総数を返します（ジョブの生存期間中は不変）
func (j *UploadJob) TotalCount() int {
	return len(j.photos)
}

// UpdatedAt は最終更新時刻を返します
func (j *UploadJob) UpdatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.updatedAt
}

// CompletedAt は終端到達時刻を返します（未到達ならnil）
func (j *UploadJob) CompletedAt() *time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.completedAt == nil {
		return nil
	}
	t := *j.completedAt
	return &t
}

// IsTerminal は終端状態かどうかを判定します
func (j *UploadJob) IsTerminal() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status.IsTerminal()
}

// IsOwnedBy は指定ユーザーが所有者かどうかを判定します
func (j *UploadJob) IsOwnedBy(ownerID uuid.UUID) bool {
	return j.OwnerID == ownerID
}
