package extract

import (
	"regexp"
	"strings"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/entity"
)

// Synonym tables for expense documents (receipts, simple purchase invoices).
// Same ordering contract as the invoice tables.
var (
	expenseNumberLabels = []string{
		"nr dokumentu", "numer dokumentu", "nr paragonu", "paragon nr",
		"nr faktury", "numer",
	}
	expenseDateLabels = []string{
		"data sprzedaży", "data wystawienia", "data zakupu", "data",
	}
	counterpartNameLabels = []string{
		"sprzedawca", "wystawca", "dostawca", "seller",
	}
	counterpartTaxIDLabels = []string{
		"nip sprzedawcy", "nip", "tax id",
	}
	expenseNetLabels = []string{
		"razem netto", "wartość netto", "suma netto", "netto",
	}
	expenseVATLabels = []string{
		"razem vat", "kwota vat", "suma vat", "vat",
	}
	expenseGrossLabels = []string{
		"do zapłaty", "razem brutto", "suma brutto", "brutto", "suma", "razem",
	}
)

var reVATRate = regexp.MustCompile(`(?i)\b(23|8|5|0)\s?%|\bzw\.?`)

// ExpectedExpenseFields is the number of fields the expense extractor looks
// for; the confidence score is recognized/expected.
const ExpectedExpenseFields = 9

// ExtractExpenseFields applies the ordered label heuristics to plain text
// and builds a ParsedExpenseRecord. Pure and total, like the invoice path.
func ExtractExpenseFields(text string) (entity.ParsedExpenseRecord, []entity.RecognizedField) {
	var rec entity.ParsedExpenseRecord
	var audit auditTrail

	if v, label, ok := findLabeled(text, expenseNumberLabels); ok {
		rec.DocumentNumber = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeledDate(text, expenseDateLabels); ok {
		rec.Date = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeled(text, counterpartNameLabels); ok {
		rec.CounterpartName = strPtr(v)
		audit.add(label, v)
	}
	if v, label, ok := findLabeledTaxID(text, counterpartTaxIDLabels); ok {
		rec.CounterpartNIP = strPtr(v)
		audit.add(label, v)
	}
	if cat, ok := constants.InferCategory(text); ok {
		rec.Category = &cat
		audit.add("kategoria", string(cat))
	}
	if v, raw, label, ok := findLabeledAmount(text, expenseNetLabels); ok {
		rec.NetAmount = f64Ptr(v)
		audit.add(label, raw)
	}
	if v, raw, label, ok := findLabeledAmount(text, expenseVATLabels); ok {
		rec.VATAmount = f64Ptr(v)
		audit.add(label, raw)
	}
	if v, raw, label, ok := findLabeledAmount(text, expenseGrossLabels); ok {
		rec.GrossAmount = f64Ptr(v)
		audit.add(label, raw)
	}
	if m := reVATRate.FindString(text); m != "" {
		rate := strings.ReplaceAll(strings.ToLower(m), " ", "")
		rec.VATRate = strPtr(rate)
		audit.add("stawka vat", rate)
	}

	// Free-text description: the first informative line, mirroring what a
	// bookkeeper would type into the expense form.
	if desc := firstInformativeLine(text); desc != "" {
		rec.Description = strPtr(desc)
	}

	return rec, audit.fields
}

// CountExpenseFields returns how many of the expected fields were recognized
// on the record. The derived description does not count.
func CountExpenseFields(rec *entity.ParsedExpenseRecord) int {
	n := 0
	for _, set := range []bool{
		rec.DocumentNumber != nil,
		rec.Date != nil,
		rec.CounterpartName != nil,
		rec.CounterpartNIP != nil,
		rec.Category != nil,
		rec.NetAmount != nil,
		rec.VATAmount != nil,
		rec.GrossAmount != nil,
		rec.VATRate != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func firstInformativeLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= 4 {
			if r := []rune(line); len(r) > 140 {
				line = string(r[:140])
			}
			return line
		}
	}
	return ""
}
