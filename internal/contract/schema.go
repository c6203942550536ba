package contract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// stable extraction-result contract, as a generic map. The schema is the
// shape downstream consumers (persistence, form population) rely on, so it
// is validated on every result rather than trusted.
func BuildResultJSONSchema() map[string]any {
	amount := map[string]any{"type": "number"}
	optString := map[string]any{"type": "string"}

	recognizedField := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"label":      map[string]any{"type": "string", "minLength": 1},
			"value":      map[string]any{"type": "string"},
			"page":       map[string]any{"type": "integer", "minimum": 1},
			"bounding_box": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"x":      map[string]any{"type": "integer"},
					"y":      map[string]any{"type": "integer"},
					"width":  map[string]any{"type": "integer"},
					"height": map[string]any{"type": "integer"},
				},
				"required": []string{"x", "y", "width", "height"},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"label", "value"},
	}

	validation := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "minLength": 1},
			"ok":      map[string]any{"type": "boolean"},
			"details": map[string]any{"type": "string"},
		},
		"required": []string{"name", "ok"},
	}

	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string"},
			"quantity":   amount,
			"unit":       optString,
			"net_price":  amount,
			"vat_rate":   optString,
			"line_gross": amount,
		},
		"required": []string{"name"},
	}

	invoice := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"invoice_number": optString,
			"issue_date":     optString,
			"due_date":       optString,
			"buyer_name":     optString,
			"buyer_tax_id":   map[string]any{"type": "string", "pattern": `^\d{10}$`},
			"buyer_address":  optString,
			"total_net":      amount,
			"total_vat":      amount,
			"total_gross":    amount,
			"line_items":     map[string]any{"type": "array", "items": lineItem},
		},
	}

	expense := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_number":  optString,
			"date":             optString,
			"counterpart_name": optString,
			"counterpart_nip":  map[string]any{"type": "string", "pattern": `^\d{10}$`},
			"category":         optString,
			"net_amount":       amount,
			"vat_amount":       amount,
			"gross_amount":     amount,
			"vat_rate":         optString,
			"description":      optString,
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source_description": map[string]any{"type": "string"},
			"confidence":         map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"raw_text":           map[string]any{"type": "string"},
			"fields":             map[string]any{"type": "array", "items": recognizedField},
			"validations":        map[string]any{"type": "array", "items": validation},
			"invoice":            invoice,
			"expense":            expense,
		},
		"required": []string{"source_description", "confidence", "raw_text"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
