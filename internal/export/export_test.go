package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"parakh/internal/domain"
	"parakh/internal/export"
)

func testRecord(t *testing.T) *domain.ReconciliationRecord {
	t.Helper()

	fields := map[domain.FieldKind]domain.FieldComparison{
		domain.FieldGSTIN: {
			Field:         domain.FieldGSTIN,
			POValue:       "27AABCP9782N1ZO",
			InvoiceValue:  "27AABCP9782N1ZO",
			Status:        domain.StatusMatch,
			RegistryValue: "27AABCP9782N1ZO",
		},
		domain.FieldTotalAmount: {
			Field:        domain.FieldTotalAmount,
			POValue:      "99000",
			InvoiceValue: "104000",
			Status:       domain.StatusPartial,
		},
	}
	fieldsJSON, err := json.Marshal(fields)
	require.NoError(t, err)

	registryJSON, err := json.Marshal(&domain.RegistryRecord{
		GSTIN:     "27AABCP9782N1ZO",
		TradeName: "Philips India",
		LegalName: "Philips India Limited",
		Status:    "Active",
	})
	require.NoError(t, err)

	return &domain.ReconciliationRecord{
		ID:              uuid.MustParse("a7a8a0a1-0000-4000-8000-000000000042"),
		POFileName:      "po-2023-101.pdf",
		InvoiceFileName: "invoice-1042.pdf",
		OverallStatus:   domain.StatusPartial,
		Fields:          fieldsJSON,
		Registry:        registryJSON,
		CreatedAt:       time.Date(2023, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestCSVWriter_WriteReport(t *testing.T) {
	rec := testRecord(t)

	var buf bytes.Buffer
	require.NoError(t, export.NewCSVWriter(&buf).WriteReport(rec))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Reconciliation ID", rec.ID.String()}, rows[0])
	assert.Equal(t, []string{"Overall Status", "partial"}, rows[3])

	header := rows[5]
	assert.Equal(t, []string{"Field", "PO Value", "Invoice Value", "Status", "Registry Value"}, header)

	// Field rows follow the fixed vocabulary order: GSTIN before amount.
	assert.Equal(t, []string{"GST Number", "27AABCP9782N1ZO", "27AABCP9782N1ZO", "match", "27AABCP9782N1ZO"}, rows[6])
	assert.Equal(t, []string{"Total Amount", "99000", "104000", "partial", ""}, rows[7])

	assert.Equal(t, []string{"Registry Trade Name", "Philips India"}, rows[9])
}

func TestCSVWriter_NoRegistryBlockWithoutLookup(t *testing.T) {
	rec := testRecord(t)
	rec.Registry = nil

	var buf bytes.Buffer
	require.NoError(t, export.NewCSVWriter(&buf).WriteReport(rec))
	assert.NotContains(t, buf.String(), "Registry Trade Name")
}

func TestWriteXLSX(t *testing.T) {
	rec := testRecord(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, rec))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Reconciliation"}, f.GetSheetList())

	got, err := f.GetCellValue("Reconciliation", "B4")
	require.NoError(t, err)
	assert.Equal(t, "partial", got)

	got, err = f.GetCellValue("Reconciliation", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Field", got)

	got, err = f.GetCellValue("Reconciliation", "A8")
	require.NoError(t, err)
	assert.Equal(t, "GST Number", got)

	got, err = f.GetCellValue("Reconciliation", "C9")
	require.NoError(t, err)
	assert.Equal(t, "104000", got)
}
