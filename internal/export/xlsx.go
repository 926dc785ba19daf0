package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"parakh/internal/domain"
)

const sheetName = "Reconciliation"

// WriteXLSX renders one reconciliation record as an Excel workbook.
func WriteXLSX(w io.Writer, rec *domain.ReconciliationRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Reconciliation ID", rec.ID.String()},
		{"PO File", rec.POFileName},
		{"Invoice File", rec.InvoiceFileName},
		{"Overall Status", string(rec.OverallStatus)},
		{"Created At", rec.CreatedAt.Format(time.RFC3339)},
	}
	row := 1
	for _, cells := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
		row++
	}

	row++ // blank separator row
	headerCell, _ := excelize.CoordinatesToCellName(1, row)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, headerCell, &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(columns), row)
		_ = f.SetCellStyle(sheetName, headerCell, endCell, boldStyle)
	}

	rows, err := fieldRows(rec)
	if err != nil {
		return err
	}
	for _, r := range rows {
		row++
		cell, _ := excelize.CoordinatesToCellName(1, row)
		cells := make([]interface{}, len(r))
		for i, v := range r {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing field row: %w", err)
		}
	}

	if reg := registryRecord(rec); reg != nil {
		row += 2
		registryRows := [][]interface{}{
			{"Registry GSTIN", reg.GSTIN},
			{"Registry Trade Name", reg.TradeName},
			{"Registry Legal Name", reg.LegalName},
			{"Registry Status", reg.Status},
		}
		for _, cells := range registryRows {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return fmt.Errorf("writing registry row: %w", err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
