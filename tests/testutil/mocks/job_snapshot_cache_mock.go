package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/gc-photos/backend/internal/usecase/upload/query"
)

// MockJobSnapshotCache is a mock of query.JobSnapshotCache
type MockJobSnapshotCache struct {
	mock.Mock
}

func NewMockJobSnapshotCache(t *testing.T) *MockJobSnapshotCache {
	m := &MockJobSnapshotCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJobSnapshotCache) Get(ctx context.Context, jobID uuid.UUID) (*query.UploadJobSnapshot, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.UploadJobSnapshot), args.Error(1)
}

func (m *MockJobSnapshotCache) Set(ctx context.Context, snapshot *query.UploadJobSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}
