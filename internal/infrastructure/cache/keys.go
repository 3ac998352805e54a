package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// ジョブスナップショット（終端ジョブのみ）
	PrefixJobSnapshot KeyPrefix = "job:snapshot" // job:snapshot:{job_id}
)

// JobSnapshotKey はジョブスナップショットキーを生成します
func JobSnapshotKey(jobID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", PrefixJobSnapshot, jobID.String())
}
