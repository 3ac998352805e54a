package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// StorageService はストレージ操作を提供する統合サービスです
type StorageService struct {
	client     *minio.Client
	bucketName string
	presigned  *PresignedURLService
}

// NewStorageService は新しいStorageServiceを作成します
func NewStorageService(client *MinIOClient) *StorageService {
	return &StorageService{
		client:     client.Client(),
		bucketName: client.BucketName(),
		presigned:  NewPresignedURLService(client),
	}
}

// GeneratePutURL はアップロード用Presigned URLを生成します
func (s *StorageService) GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return s.presigned.GeneratePutURL(ctx, objectKey, expiry)
}

// GenerateGetURL はダウンロード用Presigned URLを生成します
func (s *StorageService) GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return s.presigned.GenerateGetURL(ctx, objectKey, expiry)
}

// DeleteObjects は複数オブジェクトを一括削除します
func (s *StorageService) DeleteObjects(ctx context.Context, objectKeys []string) error {
	objectsCh := make(chan minio.ObjectInfo, len(objectKeys))

	go func() {
		defer close(objectsCh)
		for _, key := range objectKeys {
			objectsCh <- minio.ObjectInfo{Key: key}
		}
	}()

	errorCh := s.client.RemoveObjects(ctx, s.bucketName, objectsCh, minio.RemoveObjectsOptions{})

	var errors []error
	for e := range errorCh {
		if e.Err != nil {
			errors = append(errors, fmt.Errorf("failed to delete %s: %w", e.ObjectName, e.Err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to delete some objects: %v", errors)
	}

	return nil
}
