package entity

import "github.com/hrryniu/invoice-ingest/constants"

// ParsedInvoiceRecord holds the structured fields recognized on an invoice.
// Every field is optional: a nil pointer means "not recognized", never zero.
type ParsedInvoiceRecord struct {
	InvoiceNumber *string    `json:"invoice_number,omitempty"`
	IssueDate     *string    `json:"issue_date,omitempty"`
	DueDate       *string    `json:"due_date,omitempty"`
	BuyerName     *string    `json:"buyer_name,omitempty"`
	BuyerTaxID    *string    `json:"buyer_tax_id,omitempty"`
	BuyerAddress  *string    `json:"buyer_address,omitempty"`
	TotalNet      *float64   `json:"total_net,omitempty"`
	TotalVAT      *float64   `json:"total_vat,omitempty"`
	TotalGross    *float64   `json:"total_gross,omitempty"`
	LineItems     []LineItem `json:"line_items,omitempty"`
}

// LineItem is a single invoice position.
type LineItem struct {
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	NetPrice  *float64 `json:"net_price,omitempty"`
	VATRate   *string  `json:"vat_rate,omitempty"`
	LineGross *float64 `json:"line_gross,omitempty"`
}

// ParsedExpenseRecord holds the structured fields recognized on an expense
// receipt. All fields optional, same absence semantics as the invoice record.
type ParsedExpenseRecord struct {
	DocumentNumber  *string             `json:"document_number,omitempty"`
	Date            *string             `json:"date,omitempty"`
	CounterpartName *string             `json:"counterpart_name,omitempty"`
	CounterpartNIP  *string             `json:"counterpart_nip,omitempty"`
	Category        *constants.Category `json:"category,omitempty"`
	NetAmount       *float64            `json:"net_amount,omitempty"`
	VATAmount       *float64            `json:"vat_amount,omitempty"`
	GrossAmount     *float64            `json:"gross_amount,omitempty"`
	VATRate         *string             `json:"vat_rate,omitempty"`
	Description     *string             `json:"description,omitempty"`
}

// Rect is an axis-aligned bounding box in page pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RecognizedField is one audit-trail entry: a label/value pair the extractor
// matched, whether or not the value made it into the structured record.
type RecognizedField struct {
	Label       string   `json:"label"`
	Value       string   `json:"value"`
	Page        *int     `json:"page,omitempty"`
	BoundingBox *Rect    `json:"bounding_box,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// ValidationResult is one named check run against an extraction result.
type ValidationResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Details string `json:"details,omitempty"`
}
