package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/command"
)

// NewStaleUploadSweepJob は放置アップロードの掃除ジョブを作成します
// 署名付きURLの期限が切れたまま報告のない写真をfailedへ倒します
func NewStaleUploadSweepJob(cmd *command.FailExpiredPhotosCommand, interval time.Duration) Job {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return Job{
		Name:     "stale_upload_sweep",
		Interval: interval,
		Timeout:  interval,
		Fn: func(ctx context.Context) error {
			output, err := cmd.Execute(ctx)
			if err != nil {
				return err
			}
			if output.PhotosFailed > 0 {
				slog.Info("stale upload sweep completed",
					"jobs", output.JobsSwept, "photos_failed", output.PhotosFailed)
			}
			return nil
		},
	}
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: 5 * time.Minute,
		Timeout:  30 * time.Second,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}
