package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // exact IDs pass through
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.input, geminiModels), "input %q", tt.input)
	}
}

func TestBuildGeminiSchema_QuizQuestion(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":   map[string]any{"type": "string"},
			"answer":     map[string]any{"type": "integer"},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"question", "answer"},
	}

	schema := buildGeminiSchema(def)

	require.NotNil(t, schema)
	assert.Equal(t, "OBJECT", string(schema.Type))
	require.Len(t, schema.Properties, 4)
	assert.Equal(t, "STRING", string(schema.Properties["question"].Type))
	assert.Equal(t, "INTEGER", string(schema.Properties["answer"].Type))
	assert.Len(t, schema.Properties["difficulty"].Enum, 3)
	assert.Equal(t, "ARRAY", string(schema.Properties["options"].Type))
	assert.Equal(t, "STRING", string(schema.Properties["options"].Items.Type))
	assert.Equal(t, []string{"question", "answer"}, schema.Required)
}
