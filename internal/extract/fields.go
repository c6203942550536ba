package extract

import "github.com/hrryniu/invoice-ingest/internal/entity"

// auditTrail accumulates every recognized (label, value) pair, independent
// of whether the value was mapped into the structured record.
type auditTrail struct {
	fields []entity.RecognizedField
}

func (a *auditTrail) add(label, value string) {
	a.fields = append(a.fields, entity.RecognizedField{Label: label, Value: value})
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
