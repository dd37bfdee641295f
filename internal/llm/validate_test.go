package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-recap",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"lead":  map[string]any{"type": "integer", "minimum": 0},
				"going": map[string]any{"type": "string", "enum": []any{"firm", "good", "soft"}},
			},
			"required": []any{"name", "lead"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Comet","lead":3,"going":"firm"}`, false},
		{"optional omitted", `{"name":"Comet","lead":0}`, false},
		{"missing required", `{"name":"Comet"}`, true},
		{"wrong type", `{"name":"Comet","lead":"three"}`, true},
		{"bad enum", `{"name":"Comet","lead":1,"going":"heavy"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var inv *ErrInvalidResponse
			if err != nil && !errors.As(err, &inv) {
				t.Errorf("err = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`whatever`)); err != nil {
		t.Errorf("nil schema: %v", err)
	}
}

func TestValidateResponseNested(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"winner": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
					"required":   []string{"name"},
				},
				"splits": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
			},
			"required": []string{"winner", "splits"},
		},
	}
	if err := validateResponse(schema, json.RawMessage(`{"winner":{"name":"Comet"},"splits":[12.1,11.8]}`)); err != nil {
		t.Errorf("valid nested: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"winner":{"name":"Comet"},"splits":["fast"]}`)); err == nil {
		t.Error("expected error for wrong item type")
	}
}
