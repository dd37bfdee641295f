package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "one line"},
			"margin":   map[string]any{"type": "number"},
			"going":    map[string]any{"type": "string", "enum": []any{"firm", "soft"}},
			"lines": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"headline", "lines"},
	})

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(s.Properties))
	}
	if p := s.Properties["headline"]; p.Type != genai.TypeString || p.Description != "one line" {
		t.Errorf("headline = %+v", p)
	}
	if s.Properties["margin"].Type != genai.TypeNumber {
		t.Errorf("margin type = %s", s.Properties["margin"].Type)
	}
	if len(s.Properties["going"].Enum) != 2 {
		t.Errorf("going enum = %v", s.Properties["going"].Enum)
	}
	if lines := s.Properties["lines"]; lines.Type != genai.TypeArray || lines.Items.Type != genai.TypeString {
		t.Errorf("lines = %+v", lines)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}

func TestGeminiSchemaUnknownTypeDefaultsToString(t *testing.T) {
	if s := geminiSchema(map[string]any{"type": "null"}); s.Type != genai.TypeString {
		t.Errorf("type = %s, want STRING", s.Type)
	}
}
