package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"parakh/internal/domain"
	"parakh/internal/service"
)

// MockReconciliationService is a mock implementation of service.ReconciliationService.
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, input *service.ReconcileInput) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationRecord), args.Error(1)
}

func (m *MockReconciliationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationRecord), args.Error(1)
}

func (m *MockReconciliationService) List(ctx context.Context, offset, limit int) ([]domain.ReconciliationRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReconciliationRecord), args.Int(1), args.Error(2)
}

func (m *MockReconciliationService) SourceURL(ctx context.Context, id uuid.UUID, kind domain.DocumentKind) (string, error) {
	args := m.Called(ctx, id, kind)
	return args.String(0), args.Error(1)
}
