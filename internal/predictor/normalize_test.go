package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -20, want: 5},
		{in: 0, want: 5},
		{in: 4, want: 5},
		{in: 5, want: 5},
		{in: 37, want: 37},
		{in: 70, want: 70},
		{in: 71, want: 70},
		{in: 100, want: 70},
	}

	for _, tt := range tests {
		got := Clamp(tt.in)
		assert.Equal(t, tt.want, got, "Clamp(%d)", tt.in)
		assert.Equal(t, got, Clamp(got), "Clamp is not idempotent for %d", tt.in)
	}
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `[{"a":1}]`, want: `[{"a":1}]`},
		{name: "json fence", input: "```json\n[{\"a\":1}]\n```", want: `[{"a":1}]`},
		{name: "bare fence", input: "```\n[]\n```", want: `[]`},
		{name: "surrounding whitespace", input: "  \n[]\n  ", want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.input))
		})
	}
}

func compiledSchema(t *testing.T, shape ReasoningShape) *gojsonschema.Schema {
	t.Helper()
	compiled, err := compileSchema(OutputSchema(shape))
	require.NoError(t, err)
	return compiled
}

func TestParsePredictions_EmptyArrayIsValid(t *testing.T) {
	predictions, err := parsePredictions(`[]`, compiledSchema(t, ReasoningText))
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestClampAll_CountsChanges(t *testing.T) {
	predictions, err := parsePredictions(`[
		{"college_name":"A","admission_chance_percent":2,"reasoning":"r"},
		{"college_name":"B","admission_chance_percent":50,"reasoning":"r"},
		{"college_name":"C","admission_chance_percent":99,"reasoning":"r"}
	]`, compiledSchema(t, ReasoningText))
	require.NoError(t, err)

	assert.Equal(t, 2, clampAll(predictions))
	assert.Equal(t, 5, predictions[0].AdmissionChancePercent)
	assert.Equal(t, 50, predictions[1].AdmissionChancePercent)
	assert.Equal(t, 70, predictions[2].AdmissionChancePercent)
	assert.Equal(t, 0, clampAll(predictions))
}

func TestParsePredictions_AcceptsNumbersTheSchemaAllows(t *testing.T) {
	compiled := compiledSchema(t, ReasoningText)

	for _, raw := range []string{`50.0`, `95.0`, `1e3`, `99999999999999999999`} {
		predictions, err := parsePredictions(`[{"college_name":"X","admission_chance_percent":`+raw+`,"reasoning":"r"}]`, compiled)
		require.NoError(t, err, raw)
		require.Len(t, predictions, 1, raw)
	}
}
