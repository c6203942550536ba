package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/entity"
	"github.com/hrryniu/invoice-ingest/internal/export"
)

func str(v string) *string   { return &v }
func f64(v float64) *float64 { return &v }

func TestResultXLSX_Invoice(t *testing.T) {
	svc := export.NewService(nil)

	res := &entity.ExtractionResult{
		SourceDescription: "fv.pdf (pdf, pdf-text)",
		Confidence:        0.67,
		RawText:           "Faktura VAT",
		Fields: []entity.RecognizedField{
			{Label: "nr faktury", Value: "FV/2024/001"},
			{Label: "brutto", Value: "369,00"},
		},
		Validations: []entity.ValidationResult{
			{Name: "text_extracted", OK: true},
			{Name: "totals_balance", OK: true},
		},
		Invoice: &entity.ParsedInvoiceRecord{
			InvoiceNumber: str("FV/2024/001"),
			BuyerTaxID:    str("1234563218"),
			TotalGross:    f64(369.00),
		},
	}

	data, err := svc.ResultXLSX(res)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Summary")
	assert.Contains(t, f.GetSheetList(), "Fields")

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Source", rows[0][0])
	assert.Equal(t, "fv.pdf (pdf, pdf-text)", rows[0][1])

	fields, err := f.GetRows("Fields")
	require.NoError(t, err)
	require.Len(t, fields, 3) // header + two fields
	assert.Equal(t, "nr faktury", fields[1][0])
	assert.Equal(t, "FV/2024/001", fields[1][1])
}

func TestResultXLSX_ExpenseWithCategory(t *testing.T) {
	svc := export.NewService(nil)
	cat := constants.Fuel

	res := &entity.ExtractionResult{
		SourceDescription: "paragon.jpg (jpeg, image-ocr)",
		Confidence:        0.44,
		RawText:           "Paragon",
		Expense: &entity.ParsedExpenseRecord{
			DocumentNumber: str("0042/2024"),
			Category:       &cat,
			GrossAmount:    f64(300.00),
		},
	}

	data, err := svc.ResultXLSX(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)

	var foundCategory bool
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "Category" {
			foundCategory = true
			assert.Equal(t, "Fuel", r[1])
		}
	}
	assert.True(t, foundCategory)
}
