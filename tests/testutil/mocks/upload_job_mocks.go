package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/entity"
)

// MockUploadJobRepository is a mock of repository.UploadJobRepository
type MockUploadJobRepository struct {
	mock.Mock
}

func NewMockUploadJobRepository(t *testing.T) *MockUploadJobRepository {
	m := &MockUploadJobRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUploadJobRepository) Create(ctx context.Context, job *entity.UploadJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockUploadJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UploadJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UploadJob), args.Error(1)
}

func (m *MockUploadJobRepository) Update(ctx context.Context, job *entity.UploadJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockUploadJobRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.UploadJob, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UploadJob), args.Error(1)
}

func (m *MockUploadJobRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadJobRepository) FindStale(ctx context.Context, createdBefore time.Time) ([]*entity.UploadJob, error) {
	args := m.Called(ctx, createdBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UploadJob), args.Error(1)
}
