package contract

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hrryniu/invoice-ingest/internal/entity"
)

const totalsTolerance = 0.01

// Validate runs the named checks over a finished result and returns one
// entry per check. Checks that do not apply (e.g. no tax id recognized) are
// skipped rather than reported as failures.
func Validate(res *entity.ExtractionResult) []entity.ValidationResult {
	var out []entity.ValidationResult

	out = append(out, textExtracted(res))
	if v, ok := totalsBalance(res); ok {
		out = append(out, v)
	}
	if v, ok := nipChecksum(res); ok {
		out = append(out, v)
	}
	out = append(out, contractSchema(res))

	return out
}

func textExtracted(res *entity.ExtractionResult) entity.ValidationResult {
	if res.RawText == "" {
		return entity.ValidationResult{
			Name:    "text_extracted",
			OK:      false,
			Details: "no text could be extracted from the document",
		}
	}
	return entity.ValidationResult{Name: "text_extracted", OK: true}
}

// totalsBalance checks net + VAT ≈ gross when all three were recognized.
func totalsBalance(res *entity.ExtractionResult) (entity.ValidationResult, bool) {
	var net, vat, gross *float64
	switch {
	case res.Invoice != nil:
		net, vat, gross = res.Invoice.TotalNet, res.Invoice.TotalVAT, res.Invoice.TotalGross
	case res.Expense != nil:
		net, vat, gross = res.Expense.NetAmount, res.Expense.VATAmount, res.Expense.GrossAmount
	}
	if net == nil || vat == nil || gross == nil {
		return entity.ValidationResult{}, false
	}

	diff := math.Abs(*net + *vat - *gross)
	if diff > totalsTolerance {
		return entity.ValidationResult{
			Name:    "totals_balance",
			OK:      false,
			Details: fmt.Sprintf("net %.2f + vat %.2f differs from gross %.2f by %.2f", *net, *vat, *gross, diff),
		}, true
	}
	return entity.ValidationResult{Name: "totals_balance", OK: true}, true
}

// nipWeights are the Polish NIP checksum weights; the weighted sum of the
// first nine digits mod 11 must equal the tenth digit.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

func nipChecksum(res *entity.ExtractionResult) (entity.ValidationResult, bool) {
	var nip *string
	switch {
	case res.Invoice != nil:
		nip = res.Invoice.BuyerTaxID
	case res.Expense != nil:
		nip = res.Expense.CounterpartNIP
	}
	if nip == nil {
		return entity.ValidationResult{}, false
	}

	if ValidNIP(*nip) {
		return entity.ValidationResult{Name: "nip_checksum", OK: true}, true
	}
	return entity.ValidationResult{
		Name:    "nip_checksum",
		OK:      false,
		Details: fmt.Sprintf("tax id %q fails the NIP checksum", *nip),
	}, true
}

// ValidNIP reports whether a ten-digit string passes the NIP checksum.
func ValidNIP(nip string) bool {
	if len(nip) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		d := int(nip[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		sum += d * nipWeights[i]
	}
	check := sum % 11
	if check == 10 {
		return false
	}
	return check == int(nip[9]-'0')
}

func contractSchema(res *entity.ExtractionResult) entity.ValidationResult {
	data, err := json.Marshal(res)
	if err != nil {
		return entity.ValidationResult{Name: "contract_schema", OK: false, Details: err.Error()}
	}
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), data); err != nil {
		return entity.ValidationResult{Name: "contract_schema", OK: false, Details: err.Error()}
	}
	return entity.ValidationResult{Name: "contract_schema", OK: true}
}
