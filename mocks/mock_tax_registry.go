package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parakh/internal/domain"
)

// MockTaxRegistry is a mock implementation of port.TaxRegistry.
type MockTaxRegistry struct {
	mock.Mock
}

func (m *MockTaxRegistry) LookupGSTIN(ctx context.Context, gstin string) (*domain.RegistryRecord, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryRecord), args.Error(1)
}
