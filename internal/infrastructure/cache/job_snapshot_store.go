package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
)

// DefaultSnapshotTTL は終端ジョブスナップショットの保持期間です
// スナップショットは不変なので無効化は不要で、期限切れで自然に消えます
const DefaultSnapshotTTL = 24 * time.Hour

// JobSnapshotStore は終端ジョブスナップショットのRedis実装です
type JobSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobSnapshotStore は新しいJobSnapshotStoreを作成します
func NewJobSnapshotStore(client *RedisClient, ttl time.Duration) *JobSnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &JobSnapshotStore{
		client: client.Client(),
		ttl:    ttl,
	}
}

// Get はスナップショットを取得します。キャッシュミス時は(nil, nil)を返します
func (s *JobSnapshotStore) Get(ctx context.Context, jobID uuid.UUID) (*query.UploadJobSnapshot, error) {
	data, err := s.client.Get(ctx, JobSnapshotKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job snapshot: %w", err)
	}

	var snapshot query.UploadJobSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set はスナップショットを保存します
func (s *JobSnapshotStore) Set(ctx context.Context, snapshot *query.UploadJobSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal job snapshot: %w", err)
	}

	if err := s.client.Set(ctx, JobSnapshotKey(snapshot.JobID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set job snapshot: %w", err)
	}
	return nil
}
