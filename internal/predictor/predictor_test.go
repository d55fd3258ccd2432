package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BerylCAtieno/admissions-predictor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBackend struct {
	text  string
	err   error
	delay time.Duration
	calls []Request
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, req Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func newTestPredictor(t *testing.T, backend Backend, templateName string) *Predictor {
	t.Helper()
	tmpl, err := LookupTemplate(templateName)
	require.NoError(t, err)

	safety, err := NewSafetyPolicy(map[string]string{
		"harassment":        "BLOCK_MEDIUM_AND_ABOVE",
		"hate_speech":       "BLOCK_MEDIUM_AND_ABOVE",
		"sexually_explicit": "BLOCK_ONLY_HIGH",
		"dangerous_content": "BLOCK_LOW_AND_ABOVE",
	})
	require.NoError(t, err)

	p, err := New(backend, Config{Template: tmpl, Safety: safety, Timeout: time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return p
}

func sampleProfile(t *testing.T) *models.StudentProfile {
	t.Helper()
	var p models.StudentProfile
	require.NoError(t, json.Unmarshal([]byte(`{"gpa":3.8,"sat":1450,"ecs":["Debate"],"awards":[]}`), &p))
	return &p
}

func TestPredictor_Predict_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "below range is raised to minimum",
			payload:  `[{"college_name":"X","admission_chance_percent":3,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":5,"reasoning":"r"}]`,
		},
		{
			name:     "above range is lowered to maximum",
			payload:  `[{"college_name":"X","admission_chance_percent":95,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":70,"reasoning":"r"}]`,
		},
		{
			name:     "negative values are raised to minimum",
			payload:  `[{"college_name":"X","admission_chance_percent":-10,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":5,"reasoning":"r"}]`,
		},
		{
			name:     "integral float is accepted",
			payload:  `[{"college_name":"X","admission_chance_percent":50.0,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":50,"reasoning":"r"}]`,
		},
		{
			name:     "integral float above range is lowered to maximum",
			payload:  `[{"college_name":"X","admission_chance_percent":95.0,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":70,"reasoning":"r"}]`,
		},
		{
			name:     "exponent form is clamped",
			payload:  `[{"college_name":"X","admission_chance_percent":1e3,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":70,"reasoning":"r"}]`,
		},
		{
			name:     "huge exponent is clamped",
			payload:  `[{"college_name":"X","admission_chance_percent":1e20,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":70,"reasoning":"r"}]`,
		},
		{
			name:     "integer beyond int64 is clamped",
			payload:  `[{"college_name":"X","admission_chance_percent":99999999999999999999,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":70,"reasoning":"r"}]`,
		},
		{
			name:     "large negative exponent is raised to minimum",
			payload:  `[{"college_name":"X","admission_chance_percent":-1e20,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":5,"reasoning":"r"}]`,
		},
		{
			name:     "in range is unchanged",
			payload:  `[{"college_name":"X","admission_chance_percent":42,"reasoning":"r"}]`,
			expected: `[{"college_name":"X","admission_chance_percent":42,"reasoning":"r"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{text: tt.payload}
			p := newTestPredictor(t, backend, "v1")

			predictions, err := p.Predict(context.Background(), sampleProfile(t), []string{"X"})
			require.NoError(t, err)

			out, err := json.Marshal(predictions)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
		})
	}
}

func TestPredictor_Predict_PassesThroughLengthAndFields(t *testing.T) {
	payload := `[
		{"college_name":"Tufts University","admission_chance_percent":35,"reasoning":{"strengths":"s1","weaknesses":"w1","advice":"a1"}},
		{"college_name":"MIT","admission_chance_percent":8,"reasoning":{"strengths":"s2","weaknesses":"w2","advice":"a2"}},
		{"college_name":"UMass Amherst","admission_chance_percent":88,"reasoning":{"strengths":"s3","weaknesses":"w3","advice":"a3"}}
	]`
	backend := &fakeBackend{text: payload}
	p := newTestPredictor(t, backend, "v5")

	predictions, err := p.Predict(context.Background(), sampleProfile(t), []string{"Tufts", "MIT", "UMass"})
	require.NoError(t, err)
	require.Len(t, predictions, 3)

	assert.Equal(t, "Tufts University", predictions[0].CollegeName)
	assert.Equal(t, 35, predictions[0].AdmissionChancePercent)
	require.NotNil(t, predictions[0].Reasoning.Structured)
	assert.Equal(t, "w1", predictions[0].Reasoning.Structured.Weaknesses)
	assert.Equal(t, 8, predictions[1].AdmissionChancePercent)
	assert.Equal(t, 70, predictions[2].AdmissionChancePercent)
}

func TestPredictor_Predict_SendsPromptSchemaAndSafety(t *testing.T) {
	backend := &fakeBackend{text: `[{"college_name":"Tufts","admission_chance_percent":30,"reasoning":{"strengths":"s","weaknesses":"w","advice":"a"}}]`}
	p := newTestPredictor(t, backend, "v5")

	_, err := p.Predict(context.Background(), sampleProfile(t), []string{"Tufts"})
	require.NoError(t, err)

	require.Len(t, backend.calls, 1)
	req := backend.calls[0]
	assert.Contains(t, req.Prompt, "1. Tufts")
	assert.Equal(t, TypeArray, req.Schema.Type)
	assert.Equal(t, TypeObject, req.Schema.Items.Properties["reasoning"].Type)
	assert.Equal(t, BlockOnlyHigh, req.Safety[HarmSexuallyExplicit])
	assert.Len(t, req.Safety, len(HarmCategories))
}

func TestPredictor_Predict_Failures(t *testing.T) {
	tests := []struct {
		name     string
		backend  *fakeBackend
		template string
		colleges []string
		wantErr  error
	}{
		{
			name:     "backend error",
			backend:  &fakeBackend{err: errors.New("quota exceeded")},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrBackendInvocation,
		},
		{
			name:     "empty payload",
			backend:  &fakeBackend{text: "  \n "},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrEmptyBackendResponse,
		},
		{
			name:     "backend timeout",
			backend:  &fakeBackend{delay: 5 * time.Second},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrEmptyBackendResponse,
		},
		{
			name:     "not json",
			backend:  &fakeBackend{text: "I think your chances are good."},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "object instead of array",
			backend:  &fakeBackend{text: `{"college_name":"X","admission_chance_percent":30,"reasoning":"r"}`},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "missing required field",
			backend:  &fakeBackend{text: `[{"college_name":"X","reasoning":"r"}]`},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "non-integer chance",
			backend:  &fakeBackend{text: `[{"college_name":"X","admission_chance_percent":33.5,"reasoning":"r"}]`},
			template: "v1",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "text reasoning under structured template",
			backend:  &fakeBackend{text: `[{"college_name":"X","admission_chance_percent":30,"reasoning":"r"}]`},
			template: "v5",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "structured reasoning missing advice",
			backend:  &fakeBackend{text: `[{"college_name":"X","admission_chance_percent":30,"reasoning":{"strengths":"s","weaknesses":"w"}}]`},
			template: "v3",
			colleges: []string{"X"},
			wantErr:  ErrMalformedBackendResponse,
		},
		{
			name:     "fewer predictions than colleges",
			backend:  &fakeBackend{text: `[{"college_name":"X","admission_chance_percent":30,"reasoning":"r"}]`},
			template: "v1",
			colleges: []string{"X", "Y"},
			wantErr:  ErrMalformedBackendResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPredictor(t, tt.backend, tt.template)
			p.timeout = 20 * time.Millisecond

			predictions, err := p.Predict(context.Background(), sampleProfile(t), tt.colleges)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, predictions)
			assert.Len(t, tt.backend.calls, 1)
		})
	}
}

func TestPredictor_Predict_FencedPayload(t *testing.T) {
	backend := &fakeBackend{text: "```json\n[{\"college_name\":\"X\",\"admission_chance_percent\":20,\"reasoning\":\"r\"}]\n```"}
	p := newTestPredictor(t, backend, "v1")

	predictions, err := p.Predict(context.Background(), sampleProfile(t), []string{"X"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, 20, predictions[0].AdmissionChancePercent)
}

func TestPredictor_Predict_MissingInputSkipsBackend(t *testing.T) {
	backend := &fakeBackend{text: `[]`}
	p := newTestPredictor(t, backend, "v5")

	_, err := p.Predict(context.Background(), nil, []string{"X"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = p.Predict(context.Background(), sampleProfile(t), nil)
	assert.ErrorIs(t, err, ErrMissingInput)

	assert.Empty(t, backend.calls)
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(&fakeBackend{}, Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultTemplate, p.Template().Name)
	assert.Equal(t, DefaultTimeout, p.timeout)
	assert.NotNil(t, p.compiled)
}

func TestNew_LogsTemplateDescription(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tmpl, err := LookupTemplate("v3")
	require.NoError(t, err)

	_, err = New(&fakeBackend{}, Config{Template: tmpl}, zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("predictor ready").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "v3", fields["template"])
	assert.Equal(t, tmpl.Description, fields["template_description"])
	assert.Equal(t, "structured", fields["reasoning"])
}

func TestPredictor_ReusesCompiledSchema(t *testing.T) {
	backend := &fakeBackend{text: `[{"college_name":"X","admission_chance_percent":30,"reasoning":"r"}]`}
	p := newTestPredictor(t, backend, "v1")
	compiled := p.compiled

	for i := 0; i < 3; i++ {
		_, err := p.Predict(context.Background(), sampleProfile(t), []string{"X"})
		require.NoError(t, err)
	}
	assert.Same(t, compiled, p.compiled)
	assert.Len(t, backend.calls, 3)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "MISSING_INPUT", ErrorCode(ErrMissingInput))
	assert.Equal(t, "EMPTY_BACKEND_RESPONSE", ErrorCode(errors.Join(errors.New("ctx"), ErrEmptyBackendResponse)))
	assert.Equal(t, "UNKNOWN_ERROR", ErrorCode(errors.New("boom")))
}
