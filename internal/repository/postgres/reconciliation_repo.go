package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"parakh/internal/domain"
	"parakh/internal/port"
)

type reconciliationRepo struct {
	db *sqlx.DB
}

// NewReconciliationRepo creates a new PostgreSQL-backed ReconciliationRepository.
func NewReconciliationRepo(db *sqlx.DB) port.ReconciliationRepository {
	return &reconciliationRepo{db: db}
}

func (r *reconciliationRepo) Create(ctx context.Context, rec *domain.ReconciliationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reconciliations
		   (id, po_file_name, invoice_file_name, po_object_key, invoice_object_key,
		    overall_status, fields, registry)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.POFileName, rec.InvoiceFileName, rec.POObjectKey, rec.InvoiceObjectKey,
		rec.OverallStatus, rec.Fields, rec.Registry)
	if err != nil {
		return fmt.Errorf("reconciliationRepo.Create: %w", err)
	}
	return nil
}

func (r *reconciliationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error) {
	var rec domain.ReconciliationRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT * FROM reconciliations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reconciliationRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *reconciliationRepo) List(ctx context.Context, offset, limit int) ([]domain.ReconciliationRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reconciliations`)
	if err != nil {
		return nil, 0, fmt.Errorf("reconciliationRepo.List count: %w", err)
	}

	var records []domain.ReconciliationRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM reconciliations
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reconciliationRepo.List: %w", err)
	}
	return records, total, nil
}
