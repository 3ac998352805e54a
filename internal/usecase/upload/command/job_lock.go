package command

import (
	"sync"

	"github.com/google/uuid"
)

const jobLockStripes = 64

// JobLocker はジョブIDごとの排他制御を提供します
// 同一ジョブへのステータスレポートを直列化しつつ、異なるジョブは
// 並行に処理できるようストライプ化したミューテックスを使います。
// ジョブの排他境界はストレージエンジンに依存せず、このプロセス内で保証します。
// 全レポートコマンドで1つのインスタンスを共有してください
type JobLocker struct {
	stripes [jobLockStripes]sync.Mutex
}

// NewJobLocker は新しいJobLockerを作成します
func NewJobLocker() *JobLocker {
	return &JobLocker{}
}

// Lock は指定ジョブのロックを取得します
func (l *JobLocker) Lock(jobID uuid.UUID) {
	l.stripes[stripeFor(jobID)].Lock()
}

// Unlock は指定ジョブのロックを解放します
func (l *JobLocker) Unlock(jobID uuid.UUID) {
	l.stripes[stripeFor(jobID)].Unlock()
}

// stripeFor はジョブIDからストライプ番号を求めます
// UUIDはランダムなので先頭バイトで十分に分散します
func stripeFor(jobID uuid.UUID) int {
	return int(jobID[0]) % jobLockStripes
}
