package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/service"
)

// MockStorageService はテスト用のStorageService実装です
type MockStorageService struct {
	mu sync.Mutex

	// エラーを返すように設定できる
	PutURLError        error
	GetURLError        error
	DeleteObjectsError error

	// 発行したURL・削除したオブジェクトのキーを記録する
	PutURLKeys  []string
	GetURLKeys  []string
	DeletedKeys []string
}

// NewMockStorageService は新しいMockStorageServiceを作成します
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{}
}

// GeneratePutURL はアップロード用Presigned URLを生成します
func (m *MockStorageService) GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PutURLError != nil {
		return nil, m.PutURLError
	}
	m.PutURLKeys = append(m.PutURLKeys, objectKey)
	return &service.PresignedURL{
		URL:       fmt.Sprintf("http://mock-storage/upload/%s", objectKey),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// GenerateGetURL はダウンロード用Presigned URLを生成します
func (m *MockStorageService) GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetURLError != nil {
		return nil, m.GetURLError
	}
	m.GetURLKeys = append(m.GetURLKeys, objectKey)
	return &service.PresignedURL{
		URL:       fmt.Sprintf("http://mock-storage/download/%s", objectKey),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// DeleteObjects は複数オブジェクトを削除します
func (m *MockStorageService) DeleteObjects(ctx context.Context, objectKeys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteObjectsError != nil {
		return m.DeleteObjectsError
	}
	m.DeletedKeys = append(m.DeletedKeys, objectKeys...)
	return nil
}

// Reset はモックの状態をリセットします
func (m *MockStorageService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutURLError = nil
	m.GetURLError = nil
	m.DeleteObjectsError = nil
	m.PutURLKeys = nil
	m.GetURLKeys = nil
	m.DeletedKeys = nil
}
