package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/entity"
	"github.com/hrryniu/invoice-ingest/internal/ocr"
	"github.com/hrryniu/invoice-ingest/internal/pipeline"
)

type stubText struct {
	res ocr.ExtractionResult
	err error
}

func (s stubText) Extract(_ context.Context, _ []byte, _ constants.MediaType) (ocr.ExtractionResult, error) {
	return s.res, s.err
}

const invoiceText = "Nr faktury: FV/2024/001\n" +
	"Data wystawienia: 15.01.2024\n" +
	"NIP: 1234567890\n" +
	"Netto: 300,00\n" +
	"VAT: 69,00\n" +
	"Brutto: 369,00"

func TestProcess_Invoice(t *testing.T) {
	p := pipeline.NewProcessor(stubText{res: ocr.ExtractionResult{
		Text: invoiceText, Method: "pdf-text", Pages: 1, Confidence: 1,
	}}, nil)

	doc := &entity.Document{
		Bytes:     []byte("%PDF-"),
		MediaType: constants.MediaTypePDF,
		Class:     constants.ClassInvoice,
		Filename:  "fv-2024-001.pdf",
	}
	res, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, res.Invoice)
	assert.Nil(t, res.Expense)

	require.NotNil(t, res.Invoice.InvoiceNumber)
	assert.Equal(t, "FV/2024/001", *res.Invoice.InvoiceNumber)
	require.NotNil(t, res.Invoice.TotalGross)
	assert.InDelta(t, 369.00, *res.Invoice.TotalGross, 1e-9)

	// 6 of 9 expected fields recognized
	assert.InDelta(t, 6.0/9.0, res.Confidence, 1e-9)
	assert.Equal(t, invoiceText, res.RawText)
	assert.Equal(t, "fv-2024-001.pdf (pdf, pdf-text)", res.SourceDescription)

	names := make(map[string]bool)
	for _, v := range res.Validations {
		names[v.Name] = v.OK
	}
	assert.True(t, names["text_extracted"])
	assert.True(t, names["totals_balance"])
	assert.False(t, names["nip_checksum"], "1234567890 fails the checksum")
	assert.True(t, names["contract_schema"])
}

func TestProcess_ExpenseByDefaultClass(t *testing.T) {
	text := "Paragon nr 7/2024\nData: 03.02.2024\nSprzedawca: Orange Polska S.A.\n" +
		"Abonament telefoniczny\nDo zapłaty: 61,50 zł"
	p := pipeline.NewProcessor(stubText{res: ocr.ExtractionResult{
		Text: text, Method: "image-ocr", Pages: 1, Confidence: 0.8,
	}}, nil)

	// no class given and no invoice hint in the filename -> expense
	doc := &entity.Document{Bytes: []byte{0x89}, MediaType: constants.MediaTypePNG, Filename: "skan.png"}
	res, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, res.Expense)
	assert.Nil(t, res.Invoice)

	require.NotNil(t, res.Expense.Category)
	assert.Equal(t, constants.Telecom, *res.Expense.Category)
	require.NotNil(t, res.Expense.GrossAmount)
	assert.InDelta(t, 61.50, *res.Expense.GrossAmount, 1e-9)
}

func TestProcess_InvoiceClassFromFilename(t *testing.T) {
	p := pipeline.NewProcessor(stubText{res: ocr.ExtractionResult{
		Text: invoiceText, Method: "image-ocr", Pages: 1,
	}}, nil)

	doc := &entity.Document{Bytes: []byte{0x89}, MediaType: constants.MediaTypeJPEG, Filename: "faktura_styczen.jpg"}
	res, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	assert.NotNil(t, res.Invoice)
	assert.Nil(t, res.Expense)
}

func TestProcess_ZeroConfidenceFallback(t *testing.T) {
	p := pipeline.NewProcessor(stubText{res: ocr.ExtractionResult{
		Text: "", Method: "pdf-fallback", Warnings: []string{"invalid pdf: xref broken"},
	}}, nil)

	doc := &entity.Document{Bytes: []byte("junk"), MediaType: constants.MediaTypePDF, Class: constants.ClassInvoice}
	res, err := p.Process(context.Background(), doc)
	require.NoError(t, err, "pdf fallback is a completed result, not a failure")

	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.RawText)
	assert.Empty(t, res.Fields)

	var textExtracted *bool
	for _, v := range res.Validations {
		if v.Name == "text_extracted" {
			ok := v.OK
			textExtracted = &ok
		}
	}
	require.NotNil(t, textExtracted)
	assert.False(t, *textExtracted)
}

func TestProcess_HardErrorPropagates(t *testing.T) {
	sentinel := errors.New("tesseract: exit status 1")
	p := pipeline.NewProcessor(stubText{err: sentinel}, nil)

	doc := &entity.Document{Bytes: []byte{0x89}, MediaType: constants.MediaTypePNG}
	res, err := p.Process(context.Background(), doc)
	require.ErrorIs(t, err, sentinel)
	assert.Nil(t, res)
}
