package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildRulesSchema returns the JSON-Schema (draft 2020-12 subset) for rules
// files as a generic map.
func buildRulesSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"substitutions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"from": map[string]any{"type": "string", "minLength": 1},
						"to":   map[string]any{"type": "string"},
					},
					"required": []string{"from", "to"},
				},
			},
			"name_fallback": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"min_name_length": map[string]any{"type": "integer", "minimum": 1},
					"label_keywords": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
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
