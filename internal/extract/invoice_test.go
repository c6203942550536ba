package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/internal/extract"
)

const invoiceFixture = "Nr faktury: FV/2024/001\n" +
	"Data wystawienia: 15.01.2024\n" +
	"NIP: 1234567890\n" +
	"Netto: 300,00\n" +
	"VAT: 69,00\n" +
	"Brutto: 369,00"

func TestExtractInvoiceFields_Fixture(t *testing.T) {
	rec, fields := extract.ExtractInvoiceFields(invoiceFixture)

	require.NotNil(t, rec.InvoiceNumber)
	assert.Equal(t, "FV/2024/001", *rec.InvoiceNumber)

	require.NotNil(t, rec.IssueDate)
	assert.Equal(t, "15.01.2024", *rec.IssueDate)

	require.NotNil(t, rec.BuyerTaxID)
	assert.Equal(t, "1234567890", *rec.BuyerTaxID)

	require.NotNil(t, rec.TotalNet)
	assert.InDelta(t, 300.0, *rec.TotalNet, 0.001)
	require.NotNil(t, rec.TotalVAT)
	assert.InDelta(t, 69.0, *rec.TotalVAT, 0.001)
	require.NotNil(t, rec.TotalGross)
	assert.InDelta(t, 369.0, *rec.TotalGross, 0.001)

	assert.NotEmpty(t, fields)
	score := extract.Score(extract.CountInvoiceFields(&rec), extract.ExpectedInvoiceFields)
	assert.Greater(t, score, 0.0)
}

func TestExtractInvoiceFields_SynonymPrecedence(t *testing.T) {
	text := "Numer: Y-999\nNr faktury: X-111\n"
	rec, _ := extract.ExtractInvoiceFields(text)

	// "nr faktury" is listed before "numer", so it wins regardless of the
	// order the labels appear in the document.
	require.NotNil(t, rec.InvoiceNumber)
	assert.Equal(t, "X-111", *rec.InvoiceNumber)
}

func TestExtractInvoiceFields_DelimiterShapes(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"colon", "Nr faktury: ABC/1", "ABC/1"},
		{"space", "Nr faktury ABC/2", "ABC/2"},
		{"dash", "Nr faktury - ABC/3", "ABC/3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := extract.ExtractInvoiceFields(tc.text)
			require.NotNil(t, rec.InvoiceNumber)
			assert.Equal(t, tc.want, *rec.InvoiceNumber)
		})
	}
}

func TestExtractInvoiceFields_NothingRecognized(t *testing.T) {
	rec, fields := extract.ExtractInvoiceFields("lorem ipsum dolor sit amet")

	assert.Nil(t, rec.InvoiceNumber)
	assert.Nil(t, rec.IssueDate)
	assert.Nil(t, rec.DueDate)
	assert.Nil(t, rec.BuyerName)
	assert.Nil(t, rec.BuyerTaxID)
	assert.Nil(t, rec.BuyerAddress)
	assert.Nil(t, rec.TotalNet)
	assert.Nil(t, rec.TotalVAT)
	assert.Nil(t, rec.TotalGross)
	assert.Empty(t, rec.LineItems)
	assert.Empty(t, fields)

	assert.Zero(t, extract.Score(extract.CountInvoiceFields(&rec), extract.ExpectedInvoiceFields))
}

func TestExtractInvoiceFields_DateRequiresDateToken(t *testing.T) {
	// "data wystawienia" matches but carries no date-shaped value, so the
	// field stays unset instead of capturing junk.
	rec, _ := extract.ExtractInvoiceFields("Data wystawienia: wkrótce")
	assert.Nil(t, rec.IssueDate)
}

func TestExtractInvoiceFields_TaxIDLength(t *testing.T) {
	// nine digits after stripping separators: rejected
	rec, _ := extract.ExtractInvoiceFields("NIP: 123-456-78-9")
	assert.Nil(t, rec.BuyerTaxID)

	// ten digits with separators: accepted and normalized
	rec, _ = extract.ExtractInvoiceFields("NIP: 123-456-32-18")
	require.NotNil(t, rec.BuyerTaxID)
	assert.Equal(t, "1234563218", *rec.BuyerTaxID)
}

func TestExtractInvoiceFields_BareRazemDoesNotStealNet(t *testing.T) {
	// "razem" must not capture the net line through its space shape when
	// no gross line exists at all
	rec, _ := extract.ExtractInvoiceFields("Razem netto 300,00")

	require.NotNil(t, rec.TotalNet)
	assert.InDelta(t, 300.0, *rec.TotalNet, 0.001)
	assert.Nil(t, rec.TotalGross)

	// a genuine bare "razem" line still works
	rec, _ = extract.ExtractInvoiceFields("Razem 369,00")
	require.NotNil(t, rec.TotalGross)
	assert.InDelta(t, 369.0, *rec.TotalGross, 0.001)
}

func TestExtractInvoiceFields_BuyerBlock(t *testing.T) {
	text := "Nabywca: Kowalski Consulting Sp. z o.o.\n" +
		"Adres: ul. Długa 5, 00-238 Warszawa\n" +
		"Termin płatności: 29.01.2024\n"
	rec, _ := extract.ExtractInvoiceFields(text)

	require.NotNil(t, rec.BuyerName)
	assert.Equal(t, "Kowalski Consulting Sp. z o.o.", *rec.BuyerName)
	require.NotNil(t, rec.BuyerAddress)
	assert.Equal(t, "ul. Długa 5, 00-238 Warszawa", *rec.BuyerAddress)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "29.01.2024", *rec.DueDate)
}
