// Package export renders stored reconciliation results as CSV or XLSX files
// for download by audit and finance teams.
package export

import (
	"encoding/json"
	"fmt"

	"parakh/internal/domain"
)

// fieldLabels maps field kinds to human-readable column values.
var fieldLabels = map[domain.FieldKind]string{
	domain.FieldGSTIN:          "GST Number",
	domain.FieldHSNCode:        "HSN Code",
	domain.FieldUdyamNumber:    "UDYAM Number",
	domain.FieldPartyName:      "Party Name",
	domain.FieldTotalAmount:    "Total Amount",
	domain.FieldDocumentNumber: "Document Number",
	domain.FieldDocumentDate:   "Document Date",
	domain.FieldContactName:    "Contact Person",
}

// columns defines the per-field header row.
var columns = []string{
	"Field",
	"PO Value",
	"Invoice Value",
	"Status",
	"Registry Value",
}

// fieldRows converts a record's stored comparisons into rows ordered by the
// fixed field vocabulary, so exports are stable across runs.
func fieldRows(rec *domain.ReconciliationRecord) ([][]string, error) {
	var fields map[domain.FieldKind]domain.FieldComparison
	if err := json.Unmarshal(rec.Fields, &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling field comparisons: %w", err)
	}

	rows := make([][]string, 0, len(fields))
	for _, kind := range domain.AllFieldKinds {
		fc, ok := fields[kind]
		if !ok {
			continue
		}
		label := fieldLabels[kind]
		if label == "" {
			label = string(kind)
		}
		rows = append(rows, []string{
			label,
			fc.POValue,
			fc.InvoiceValue,
			string(fc.Status),
			fc.RegistryValue,
		})
	}
	return rows, nil
}

func registryRecord(rec *domain.ReconciliationRecord) *domain.RegistryRecord {
	if len(rec.Registry) == 0 {
		return nil
	}
	var reg domain.RegistryRecord
	if err := json.Unmarshal(rec.Registry, &reg); err != nil {
		return nil
	}
	return &reg
}
