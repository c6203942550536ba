package extract

import (
	"github.com/hrryniu/invoice-ingest/internal/entity"
)

// Synonym tables for invoice fields. Order is the tie-break policy: the
// first synonym that yields a match wins, so the most specific wording must
// stay first. Reorder only with the fixtures in invoice_test.go in hand.
var (
	invoiceNumberLabels = []string{
		"nr faktury", "numer faktury", "faktura vat nr", "faktura nr",
		"fv nr", "invoice no", "invoice number", "numer",
	}
	issueDateLabels = []string{
		"data wystawienia", "data wyst", "wystawiono dnia", "data sprzedaży",
		"issue date", "data",
	}
	dueDateLabels = []string{
		"termin płatności", "termin zapłaty", "płatne do", "data płatności",
		"due date",
	}
	buyerNameLabels = []string{
		"nabywca", "kupujący", "buyer",
	}
	buyerTaxIDLabels = []string{
		"nip nabywcy", "nip", "tax id", "vat id",
	}
	buyerAddressLabels = []string{
		"adres nabywcy", "adres", "address",
	}
	totalNetLabels = []string{
		"razem netto", "wartość netto", "suma netto", "netto", "net total",
	}
	totalVATLabels = []string{
		"razem vat", "kwota vat", "suma vat", "vat",
	}
	totalGrossLabels = []string{
		"do zapłaty", "razem brutto", "wartość brutto", "suma brutto",
		"brutto", "razem", "total",
	}
)

// ExpectedInvoiceFields is the number of scalar fields the invoice extractor
// looks for; the confidence score is recognized/expected.
const ExpectedInvoiceFields = 9

// ExtractInvoiceFields applies the ordered label heuristics to plain text
// and builds a ParsedInvoiceRecord. Pure and total: a field that cannot be
// recognized is left nil, never zeroed, and no input ever fails.
func ExtractInvoiceFields(text string) (entity.ParsedInvoiceRecord, []entity.RecognizedField) {
	var rec entity.ParsedInvoiceRecord
	var audit auditTrail

	if v, label, ok := findLabeled(text, invoiceNumberLabels); ok {
		rec.InvoiceNumber = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeledDate(text, issueDateLabels); ok {
		rec.IssueDate = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeledDate(text, dueDateLabels); ok {
		rec.DueDate = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeled(text, buyerNameLabels); ok {
		rec.BuyerName = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeledTaxID(text, buyerTaxIDLabels); ok {
		rec.BuyerTaxID = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeled(text, buyerAddressLabels); ok {
		rec.BuyerAddress = strPtr(v)
		audit.add(label, v)
	}
	if v, raw, label, ok := findLabeledAmount(text, totalNetLabels); ok {
		rec.TotalNet = f64Ptr(v)
		audit.add(label, raw)
	}
	if v, raw, label, ok := findLabeledAmount(text, totalVATLabels); ok {
		rec.TotalVAT = f64Ptr(v)
		audit.add(label, raw)
	}
	if v, raw, label, ok := findLabeledAmount(text, totalGrossLabels); ok {
		rec.TotalGross = f64Ptr(v)
		audit.add(label, raw)
	}

	rec.LineItems = scanLineItems(text)

	return rec, audit.fields
}

// CountInvoiceFields returns how many of the expected scalar fields were
// recognized on the record.
func CountInvoiceFields(rec *entity.ParsedInvoiceRecord) int {
	n := 0
	for _, set := range []bool{
		rec.InvoiceNumber != nil,
		rec.IssueDate != nil,
		rec.DueDate != nil,
		rec.BuyerName != nil,
		rec.BuyerTaxID != nil,
		rec.BuyerAddress != nil,
		rec.TotalNet != nil,
		rec.TotalVAT != nil,
		rec.TotalGross != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
