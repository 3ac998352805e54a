package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
)

// 写真ステータス
type PhotoStatus string

const (
	PhotoStatusPending   PhotoStatus = "pending"
	PhotoStatusUploading PhotoStatus = "uploading"
	PhotoStatusCompleted PhotoStatus = "completed"
	PhotoStatusFailed    PhotoStatus = "failed"
)

// IsTerminal は終端ステータスかどうかを判定します
func (s PhotoStatus) IsTerminal() bool {
	return s == PhotoStatusCompleted || s == PhotoStatusFailed
}

// 写真関連エラー
var (
	ErrInvalidPhotoSize  = errors.New("photo size must be greater than zero")
	ErrInvalidTransition = errors.New("invalid photo status transition")
)

// Photo は1枚のアップロード対象写真エンティティ
// upload jobの作成時にのみ生成され、ステータスは遷移メソッド経由でのみ変化します
type Photo struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	OwnerID         uuid.UUID
	Name            valueobject.PhotoName
	MimeType        valueobject.MimeType
	Size            int64
	StorageKey      valueobject.StorageKey
	Status          PhotoStatus
	CreatedAt       time.Time
	StatusChangedAt time.Time
	UploadStartedAt *time.Time // アップロード開始時刻（未開始ならnil）
	UploadedAt      *time.Time // 終端到達時刻（未到達ならnil、失敗時も設定）
}

// NewPhoto は新しいPhotoを作成します
// StorageKeyは写真IDと名前から導出され、以後再生成されません
func NewPhoto(
	jobID uuid.UUID,
	ownerID uuid.UUID,
	name valueobject.PhotoName,
	mimeType valueobject.MimeType,
	size int64,
) (*Photo, error) {
	if size <= 0 {
		return nil, ErrInvalidPhotoSize
	}

	id := uuid.New()
	now := time.Now()
	return &Photo{
		ID:              id,
		JobID:           jobID,
		OwnerID:         ownerID,
		Name:            name,
		MimeType:        mimeType,
		Size:            size,
		StorageKey:      valueobject.NewStorageKey(id, name),
		Status:          PhotoStatusPending,
		CreatedAt:       now,
		StatusChangedAt: now,
	}, nil
}

// ReconstructPhoto はDBからPhotoを復元します
func ReconstructPhoto(
	id uuid.UUID,
	jobID uuid.UUID,
	ownerID uuid.UUID,
	name valueobject.PhotoName,
	mimeType valueobject.MimeType,
	size int64,
	storageKey valueobject.StorageKey,
	status PhotoStatus,
	createdAt time.Time,
	statusChangedAt time.Time,
	uploadStartedAt *time.Time,
	uploadedAt *time.Time,
) *Photo {
	return &Photo{
		ID:              id,
		JobID:           jobID,
		OwnerID:         ownerID,
		Name:            name,
		MimeType:        mimeType,
		Size:            size,
		StorageKey:      storageKey,
		Status:          status,
		CreatedAt:       createdAt,
		StatusChangedAt: statusChangedAt,
		UploadStartedAt: uploadStartedAt,
		UploadedAt:      uploadedAt,
	}
}

// MarkStarted はアップロード開始を記録します
// pending以外からの呼び出しはErrInvalidTransitionで失敗し、状態は変化しません
func (p *Photo) MarkStarted() error {
	if p.Status != PhotoStatusPending {
		return ErrInvalidTransition
	}

	now := time.Now()
	p.Status = PhotoStatusUploading
	p.StatusChangedAt = now
	p.UploadStartedAt = &now
	return nil
}

// MarkCompleted はアップロード完了を記録します
// uploading以外からの呼び出しはErrInvalidTransitionで失敗します
func (p *Photo) MarkCompleted() error {
	if p.Status != PhotoStatusUploading {
		return ErrInvalidTransition
	}

	now := time.Now()
	p.Status = PhotoStatusCompleted
	p.StatusChangedAt = now
	p.UploadedAt = &now
	return nil
}

// MarkFailed はアップロード失敗を記録します
// pendingまたはuploadingから遷移できます。URL失効などでバイト送信前に
// 失敗が確定するケースがあるため、pendingからの直接遷移を許可しています
func (p *Photo) MarkFailed() error {
	if p.Status != PhotoStatusPending && p.Status != PhotoStatusUploading {
		return ErrInvalidTransition
	}

	now := time.Now()
	p.Status = PhotoStatusFailed
	p.StatusChangedAt = now
	p.UploadedAt = &now
	return nil
}

// IsPending はペンディング状態かどうかを判定します
func (p *Photo) IsPending() bool {
	return p.Status == PhotoStatusPending
}

// IsUploading はアップロード中かどうかを判定します
func (p *Photo) IsUploading() bool {
	return p.Status == PhotoStatusUploading
}

// IsCompleted は完了済みかどうかを判定します
func (p *Photo) IsCompleted() bool {
	return p.Status == PhotoStatusCompleted
}

// IsFailed は失敗済みかどうかを判定します
func (p *Photo) IsFailed() bool {
	return p.Status == PhotoStatusFailed
}

// IsTerminal は終端状態かどうかを判定します
func (p *Photo) IsTerminal() bool {
	return p.Status.IsTerminal()
}

// IsOwnedBy は指定ユーザーが所有者かどうかを判定します
func (p *Photo) IsOwnedBy(ownerID uuid.UUID) bool {
	return p.OwnerID == ownerID
}

// clone はPhotoの複製を返します（読み取り専用ビュー用）
func (p *Photo) clone() *Photo {
	c := *p
	if p.UploadStartedAt != nil {
		t := *p.UploadStartedAt
		c.UploadStartedAt = &t
	}
	if p.UploadedAt != nil {
		t := *p.UploadedAt
		c.UploadedAt = &t
	}
	return &c
}
