package commentary

import "github.com/abhisek/gallop/internal/llm"

// RecapSchema is the reply shape requested from the model.
var RecapSchema = &llm.Schema{
	Name:        "race-recap",
	Description: "A headline and a short race call for one finished round",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "Punchy headline naming the winner (4-10 words)",
			},
			"lines": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-3 sentences calling the race",
				"minItems":    1,
				"maxItems":    3,
			},
		},
		"required":             []any{"headline", "lines"},
		"additionalProperties": false,
	},
}
