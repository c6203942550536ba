package entity

// ExtractionResult is the stable output contract of the pipeline: everything
// a caller (or the persistence layer downstream of this core) needs to act
// on one processed document.
type ExtractionResult struct {
	SourceDescription string               `json:"source_description"`
	Confidence        float64              `json:"confidence"`
	RawText           string               `json:"raw_text"`
	Fields            []RecognizedField    `json:"fields,omitempty"`
	Validations       []ValidationResult   `json:"validations,omitempty"`
	Invoice           *ParsedInvoiceRecord `json:"invoice,omitempty"`
	Expense           *ParsedExpenseRecord `json:"expense,omitempty"`
}
