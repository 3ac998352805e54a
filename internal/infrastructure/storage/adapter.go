package storage

import (
	"context"
	"time"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
)

// StorageServiceAdapter はインフラ層のStorageServiceをドメイン層のインターフェースに適合させるアダプターです
type StorageServiceAdapter struct {
	svc *StorageService
}

// NewStorageServiceAdapter は新しいStorageServiceAdapterを作成します
func NewStorageServiceAdapter(svc *StorageService) *StorageServiceAdapter {
	return &StorageServiceAdapter{svc: svc}
}

// GeneratePutURL はアップロード用Presigned URLを生成します
func (a *StorageServiceAdapter) GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	urlStr, err := a.svc.GeneratePutURL(ctx, objectKey, expiry)
	if err != nil {
		return nil, err
	}
	return &service.PresignedURL{
		URL:       urlStr,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// GenerateGetURL はダウンロード用Presigned URLを生成します
func (a *StorageServiceAdapter) GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	urlStr, err := a.svc.GenerateGetURL(ctx, objectKey, expiry)
	if err != nil {
		return nil, err
	}
	return &service.PresignedURL{
		URL:       urlStr,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// DeleteObjects は複数オブジェクトを削除します
func (a *StorageServiceAdapter) DeleteObjects(ctx context.Context, objectKeys []string) error {
	return a.svc.DeleteObjects(ctx, objectKeys)
}
