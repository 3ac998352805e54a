package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// PresignedURLService はPresigned URL生成を提供します
// クライアントはこのURLへ直接PUT/GETするため、写真のバイト列が
// アプリケーションサーバーを経由することはありません
type PresignedURLService struct {
	client     *minio.Client
	bucketName string
}

// NewPresignedURLService は新しいPresignedURLServiceを作成します
func NewPresignedURLService(client *MinIOClient) *PresignedURLService {
	return &PresignedURLService{
		client:     client.Client(),
		bucketName: client.BucketName(),
	}
}

// GeneratePutURL はアップロード用Presigned URLを生成します
func (s *PresignedURLService) GeneratePutURL(
	ctx context.Context,
	objectKey string,
	expiry time.Duration,
) (string, error) {
	presignedURL, err := s.client.PresignedPutObject(
		ctx,
		s.bucketName,
		objectKey,
		expiry,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned put URL: %w", err)
	}

	return presignedURL.String(), nil
}

// GenerateGetURL はダウンロード用Presigned URLを生成します
func (s *PresignedURLService) GenerateGetURL(
	ctx context.Context,
	objectKey string,
	expiry time.Duration,
) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(
		ctx,
		s.bucketName,
		objectKey,
		expiry,
		url.Values{},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned get URL: %w", err)
	}

	return presignedURL.String(), nil
}
