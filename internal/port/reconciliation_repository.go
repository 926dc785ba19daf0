package port

import (
	"context"

	"github.com/google/uuid"

	"parakh/internal/domain"
)

// ReconciliationRepository defines the contract for reconciliation audit persistence.
type ReconciliationRepository interface {
	Create(ctx context.Context, rec *domain.ReconciliationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReconciliationRecord, int, error)
}
