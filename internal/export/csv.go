package export

import (
	"encoding/csv"
	"io"
	"time"

	"parakh/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter renders one reconciliation record as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteReport writes a summary block, the field comparison table, and the
// registry snapshot (when present).
func (w *CSVWriter) WriteReport(rec *domain.ReconciliationRecord) error {
	summary := [][]string{
		{"Reconciliation ID", rec.ID.String()},
		{"PO File", rec.POFileName},
		{"Invoice File", rec.InvoiceFileName},
		{"Overall Status", string(rec.OverallStatus)},
		{"Created At", rec.CreatedAt.Format(time.RFC3339)},
		{},
	}
	for _, row := range summary {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	if err := w.csv.Write(columns); err != nil {
		return err
	}
	rows, err := fieldRows(rec)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	if reg := registryRecord(rec); reg != nil {
		registryRows := [][]string{
			{},
			{"Registry GSTIN", reg.GSTIN},
			{"Registry Trade Name", reg.TradeName},
			{"Registry Legal Name", reg.LegalName},
			{"Registry Status", reg.Status},
		}
		for _, row := range registryRows {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
