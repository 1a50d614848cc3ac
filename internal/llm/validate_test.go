package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quizQuestionSchema mirrors the shape the quiz generator asks for:
// question text, an answer index, and an optional difficulty label.
func quizQuestionSchema() *Schema {
	return &Schema{
		Name:        "single-quiz-question",
		Description: "One multiple-choice quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":   map[string]any{"type": "string"},
				"answer":     map[string]any{"type": "integer", "minimum": 0},
				"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"question", "answer"},
		},
	}
}

func assertInvalidResponse(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateResponse_ValidQuestion(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is osmosis?","answer":2,"difficulty":"easy"}`)
	assert.NoError(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_OptionalFieldOmitted(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is mitosis?","answer":1}`)
	assert.NoError(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is diffusion?"}`)
	assertInvalidResponse(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is osmosis?","answer":"two"}`)
	assertInvalidResponse(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_UnknownDifficulty(t *testing.T) {
	raw := json.RawMessage(`{"question":"What is osmosis?","answer":0,"difficulty":"impossible"}`)
	assertInvalidResponse(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	assertInvalidResponse(t, validateResponse(quizQuestionSchema(), raw))
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	assertInvalidResponse(t, validateResponse(quizQuestionSchema(), json.RawMessage(``)))
}

func TestValidateResponse_NilSchemaIsFreeForm(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	assert.NoError(t, validateResponse(nil, raw))
}

func TestValidateResponse_NestedQuestionSet(t *testing.T) {
	schema := &Schema{
		Name:        "question-set",
		Description: "A batch of generated questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"answers": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"topic", "answers"},
		},
	}

	valid := json.RawMessage(`{"topic":{"name":"cell transport"},"answers":[2,0,3]}`)
	assert.NoError(t, validateResponse(schema, valid))

	invalid := json.RawMessage(`{"topic":{"name":"cell transport"},"answers":["two","zero"]}`)
	assertInvalidResponse(t, validateResponse(schema, invalid))
}
