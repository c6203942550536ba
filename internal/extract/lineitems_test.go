package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/internal/extract"
)

func TestExtractInvoiceFields_LineItems(t *testing.T) {
	text := "Nr faktury: FV/7\n" +
		"Usługa księgowa 1 szt. 300,00 23% 369,00\n" +
		"Papier ksero A4 2 op. 15,50 23% 38,13\n" +
		"tu nie ma pozycji\n"

	rec, _ := extract.ExtractInvoiceFields(text)
	require.Len(t, rec.LineItems, 2)

	first := rec.LineItems[0]
	assert.Equal(t, "Usługa księgowa", first.Name)
	require.NotNil(t, first.Quantity)
	assert.InDelta(t, 1.0, *first.Quantity, 0.001)
	require.NotNil(t, first.Unit)
	assert.Equal(t, "szt", *first.Unit)
	require.NotNil(t, first.NetPrice)
	assert.InDelta(t, 300.0, *first.NetPrice, 0.001)
	require.NotNil(t, first.VATRate)
	assert.Equal(t, "23%", *first.VATRate)
	require.NotNil(t, first.LineGross)
	assert.InDelta(t, 369.0, *first.LineGross, 0.001)

	second := rec.LineItems[1]
	assert.Equal(t, "Papier ksero A4", second.Name)
	require.NotNil(t, second.Unit)
	assert.Equal(t, "op", *second.Unit)
}

func TestScanLineItems_ZeroRate(t *testing.T) {
	text := "Dostawa 1 szt. 20,00 0% 20,00"
	rec, _ := extract.ExtractInvoiceFields(text)
	require.Len(t, rec.LineItems, 1)
	require.NotNil(t, rec.LineItems[0].VATRate)
	assert.Equal(t, "0%", *rec.LineItems[0].VATRate)
}
