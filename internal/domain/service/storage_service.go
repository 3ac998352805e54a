package service

import (
	"context"
	"time"
)

// PresignedURL はPresigned URL情報を表します
type PresignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// StorageService はストレージ操作のドメインサービスインターフェースです
// クライアントはここで発行された時限付きURLに対して直接アップロード・
// ダウンロードを行い、本サービスはデータパスを仲介しません
type StorageService interface {
	// アップロード用URL生成（ジョブ作成時に写真ごとに1回だけ呼ばれる）
	GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (*PresignedURL, error)

	// ダウンロード用URL生成
	GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (*PresignedURL, error)

	// 複数オブジェクト削除（掃除ワーカーが放置された中途アップロードを回収する）
	DeleteObjects(ctx context.Context, objectKeys []string) error
}
