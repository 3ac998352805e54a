package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
)

// UploadJobRepository はアップロードジョブリポジトリのインターフェース
// CreateとUpdateはジョブと所属写真を論理的に不可分な1単位として永続化します
type UploadJobRepository interface {
	// 基本CRUD
	Create(ctx context.Context, job *entity.UploadJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UploadJob, error)
	Update(ctx context.Context, job *entity.UploadJob) error

	// 検索
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.UploadJob, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// 放置アップロード検索（掃除ワーカー用）
	// 指定時刻より前に作成され、まだ終端に達していないジョブを返します
	FindStale(ctx context.Context, createdBefore time.Time) ([]*entity.UploadJob, error)
}
