package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/internal/contract"
	"github.com/hrryniu/invoice-ingest/internal/entity"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func byName(t *testing.T, vs []entity.ValidationResult, name string) entity.ValidationResult {
	t.Helper()
	for _, v := range vs {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("validation %q not present", name)
	return entity.ValidationResult{}
}

func hasName(vs []entity.ValidationResult, name string) bool {
	for _, v := range vs {
		if v.Name == name {
			return true
		}
	}
	return false
}

func TestValidate_AllChecksPass(t *testing.T) {
	res := &entity.ExtractionResult{
		SourceDescription: "fv.pdf (pdf, pdf-text)",
		Confidence:        0.67,
		RawText:           "Faktura VAT ...",
		Invoice: &entity.ParsedInvoiceRecord{
			BuyerTaxID: str("1234563218"),
			TotalNet:   f64(300.00),
			TotalVAT:   f64(69.00),
			TotalGross: f64(369.00),
		},
	}

	vs := contract.Validate(res)
	assert.True(t, byName(t, vs, "text_extracted").OK)
	assert.True(t, byName(t, vs, "totals_balance").OK)
	assert.True(t, byName(t, vs, "nip_checksum").OK)
	assert.True(t, byName(t, vs, "contract_schema").OK)
}

func TestValidate_EmptyTextFails(t *testing.T) {
	res := &entity.ExtractionResult{SourceDescription: "junk.pdf (pdf, pdf-fallback)"}

	vs := contract.Validate(res)
	v := byName(t, vs, "text_extracted")
	assert.False(t, v.OK)
	assert.NotEmpty(t, v.Details)

	// schema still holds for an empty-but-well-formed result
	assert.True(t, byName(t, vs, "contract_schema").OK)
}

func TestValidate_TotalsTolerance(t *testing.T) {
	mk := func(gross float64) *entity.ExtractionResult {
		return &entity.ExtractionResult{
			SourceDescription: "x",
			RawText:           "x",
			Expense: &entity.ParsedExpenseRecord{
				NetAmount:   f64(100.00),
				VATAmount:   f64(23.00),
				GrossAmount: f64(gross),
			},
		}
	}

	assert.True(t, byName(t, contract.Validate(mk(123.00)), "totals_balance").OK)
	assert.True(t, byName(t, contract.Validate(mk(123.01)), "totals_balance").OK, "within ±0.01")

	v := byName(t, contract.Validate(mk(125.00)), "totals_balance")
	assert.False(t, v.OK)
	assert.Contains(t, v.Details, "125.00")
}

func TestValidate_TotalsSkippedWhenIncomplete(t *testing.T) {
	res := &entity.ExtractionResult{
		SourceDescription: "x",
		RawText:           "x",
		Expense:           &entity.ParsedExpenseRecord{GrossAmount: f64(100)},
	}
	vs := contract.Validate(res)
	assert.False(t, hasName(vs, "totals_balance"), "skipped, not failed")
}

func TestValidate_NIPSkippedWhenAbsent(t *testing.T) {
	res := &entity.ExtractionResult{
		SourceDescription: "x",
		RawText:           "x",
		Invoice:           &entity.ParsedInvoiceRecord{},
	}
	assert.False(t, hasName(contract.Validate(res), "nip_checksum"))
}

func TestValidNIP(t *testing.T) {
	assert.True(t, contract.ValidNIP("1234563218"))
	assert.False(t, contract.ValidNIP("1234567890"), "wrong check digit")
	assert.False(t, contract.ValidNIP("123456321"), "too short")
	assert.False(t, contract.ValidNIP("12345632189"), "too long")
	assert.False(t, contract.ValidNIP("123456321x"), "non-digit")
	assert.False(t, contract.ValidNIP(""))
}

func TestSchema_RejectsMalformedPayloads(t *testing.T) {
	schema := contract.BuildResultJSONSchema()

	good, err := json.Marshal(entity.ExtractionResult{SourceDescription: "x", Confidence: 0.5})
	require.NoError(t, err)
	require.NoError(t, contract.ValidateJSONAgainstSchema(schema, good))

	cases := map[string]string{
		"missing required":   `{"confidence":0.5,"raw_text":""}`,
		"confidence above 1": `{"source_description":"x","confidence":1.5,"raw_text":""}`,
		"bad tax id":         `{"source_description":"x","confidence":0.5,"raw_text":"","invoice":{"buyer_tax_id":"12-34"}}`,
		"field extra key":    `{"source_description":"x","confidence":0.5,"raw_text":"","fields":[{"label":"a","value":"b","page_no":2}]}`,
	}
	for name, payload := range cases {
		assert.Error(t, contract.ValidateJSONAgainstSchema(schema, []byte(payload)), name)
	}
}
