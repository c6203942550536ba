package constants

import "strings"

// DocumentClass selects which extraction rule set applies to a document.
type DocumentClass string

const (
	ClassInvoice DocumentClass = "invoice"
	ClassExpense DocumentClass = "expense"
)

// ParseDocumentClass maps a declared class string to a DocumentClass.
func ParseDocumentClass(s string) (DocumentClass, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice":
		return ClassInvoice, true
	case "expense":
		return ClassExpense, true
	default:
		return "", false
	}
}

// invoiceHints are filename fragments that suggest an invoice rather than a
// generic expense receipt.
var invoiceHints = []string{"faktura", "faktury", "invoice", "fv", "fa_"}

// InferDocumentClass guesses the class from a filename hint. This is a weak
// signal only used when the caller did not declare a class; unknown names
// default to expense, the safer rule set.
func InferDocumentClass(filename string) DocumentClass {
	name := strings.ToLower(filename)
	for _, h := range invoiceHints {
		if strings.Contains(name, h) {
			return ClassInvoice
		}
	}
	return ClassExpense
}
