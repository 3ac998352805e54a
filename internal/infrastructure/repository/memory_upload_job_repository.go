package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
	"github.com/Hiro-mackay/gc-photos/backend/pkg/apperror"
)

// MemoryUploadJobRepository はアップロードジョブリポジトリのインメモリ実装です
// ローカル開発やテストでPostgreSQLなしに動かすために使います。
// ジョブインスタンスを共有するため、写真の遷移は集約内のロックで直列化されます
type MemoryUploadJobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*entity.UploadJob
}

// NewMemoryUploadJobRepository は新しいMemoryUploadJobRepositoryを作成します
func NewMemoryUploadJobRepository() *MemoryUploadJobRepository {
	return &MemoryUploadJobRepository{
		jobs: make(map[uuid.UUID]*entity.UploadJob),
	}
}

// Create はジョブを保存します
func (r *MemoryUploadJobRepository) Create(ctx context.Context, job *entity.UploadJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return apperror.NewConflictError("upload job already exists")
	}
	r.jobs[job.ID] = job
	return nil
}

// FindByID はIDでジョブを検索します
func (r *MemoryUploadJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UploadJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, apperror.NewNotFoundError("upload job")
	}
	return job, nil
}

// Update はジョブの存在を確認します
// インスタンスを共有しているため状態は既に反映されています
func (r *MemoryUploadJobRepository) Update(ctx context.Context, job *entity.UploadJob) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.jobs[job.ID]; !exists {
		return apperror.NewNotFoundError("upload job")
	}
	return nil
}

// FindByOwner は所有者のジョブを新しい順で検索します
func (r *MemoryUploadJobRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.UploadJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []*entity.UploadJob
	for _, job := range r.jobs {
		if job.IsOwnedBy(ownerID) {
			owned = append(owned, job)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	if offset >= len(owned) {
		return []*entity.UploadJob{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// CountByOwner は所有者のジョブ数を返します
func (r *MemoryUploadJobRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, job := range r.jobs {
		if job.IsOwnedBy(ownerID) {
			count++
		}
	}
	return count, nil
}

// FindStale は指定時刻より前に作成され、まだ進行中のジョブを検索します
func (r *MemoryUploadJobRepository) FindStale(ctx context.Context, createdBefore time.Time) ([]*entity.UploadJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stale []*entity.UploadJob
	for _, job := range r.jobs {
		if !job.IsTerminal() && job.CreatedAt.Before(createdBefore) {
			stale = append(stale, job)
		}
	}
	sort.Slice(stale, func(i, j int) bool {
		return stale[i].CreatedAt.Before(stale[j].CreatedAt)
	})
	return stale, nil
}
