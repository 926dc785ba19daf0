package port

import (
	"context"

	"parakh/internal/domain"
)

// TaxRegistry abstracts the authoritative government registry used to confirm
// a tax identifier independent of the documents themselves.
type TaxRegistry interface {
	LookupGSTIN(ctx context.Context, gstin string) (*domain.RegistryRecord, error)
}
