package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FieldSet is a flat mapping of field kind to the raw extracted text value.
// It is produced once by the extraction collaborator and never mutated.
type FieldSet map[FieldKind]string

// FieldComparison is the per-field verdict of a reconciliation run.
type FieldComparison struct {
	Field        FieldKind   `json:"field"`
	POValue      string      `json:"po_value"`
	InvoiceValue string      `json:"invoice_value"`
	Status       MatchStatus `json:"status"`
	// RegistryValue is the authoritative canonical value, set only for the
	// tax-identifier field when the registry lookup succeeded.
	RegistryValue string `json:"registry_value,omitempty"`
}

// RegistryRecord is the authoritative registry's view of a tax identifier.
// Only GSTIN participates in reconciliation; the remaining attributes are
// passed through untouched for display.
type RegistryRecord struct {
	GSTIN     string `json:"gstin"`
	TradeName string `json:"trade_name"`
	LegalName string `json:"legal_name"`
	Status    string `json:"status"`
	Address   string `json:"address,omitempty"`
}

// ReconciliationResult is the aggregate outcome of one reconciliation run.
// It is created once by the engine and read-only thereafter.
type ReconciliationResult struct {
	Fields   map[FieldKind]FieldComparison `json:"fields"`
	Overall  MatchStatus                   `json:"overall"`
	Registry *RegistryRecord               `json:"registry,omitempty"`
}

// ReconciliationRecord is the persisted audit entry for one run.
type ReconciliationRecord struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	POFileName      string          `db:"po_file_name" json:"po_file_name"`
	InvoiceFileName string          `db:"invoice_file_name" json:"invoice_file_name"`
	POObjectKey     string          `db:"po_object_key" json:"po_object_key,omitempty"`
	InvoiceObjectKey string         `db:"invoice_object_key" json:"invoice_object_key,omitempty"`
	OverallStatus   MatchStatus     `db:"overall_status" json:"overall_status"`
	Fields          json.RawMessage `db:"fields" json:"fields"`
	Registry        json.RawMessage `db:"registry" json:"registry,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
