package predictor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/admissions-predictor/internal/metrics"
	"github.com/BerylCAtieno/admissions-predictor/internal/models"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const DefaultTimeout = 90 * time.Second

// Request is what the predictor hands to a Backend.
type Request struct {
	Prompt string
	Schema *Schema
	Safety SafetyPolicy
}

// Backend turns a prompt and output schema into structured text. An empty
// string with a nil error means the backend produced no usable content.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

type Config struct {
	Template *Template
	Safety   SafetyPolicy
	Timeout  time.Duration
}

type Predictor struct {
	backend  Backend
	template *Template
	schema   *Schema
	compiled *gojsonschema.Schema
	safety   SafetyPolicy
	timeout  time.Duration
	logger   *zap.Logger
	tracer   trace.Tracer
}

// New compiles the template's output schema once and returns a Predictor
// that reuses it for every request.
func New(backend Backend, cfg Config, log *zap.Logger) (*Predictor, error) {
	tmpl := cfg.Template
	if tmpl == nil {
		tmpl, _ = LookupTemplate(DefaultTemplate)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	schema := tmpl.Schema()
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, err
	}

	p := &Predictor{
		backend:  backend,
		template: tmpl,
		schema:   schema,
		compiled: compiled,
		safety:   cfg.Safety,
		timeout:  timeout,
		logger: log.Named("predictor").With(
			zap.String("template", tmpl.Name),
			zap.String("backend", backend.Name()),
		),
		tracer: otel.Tracer("github.com/BerylCAtieno/admissions-predictor/internal/predictor"),
	}

	p.logger.Info("predictor ready",
		zap.String("template_description", tmpl.Description),
		zap.String("reasoning", tmpl.Reasoning.String()),
		zap.Duration("timeout", timeout),
	)
	return p, nil
}

// Template returns the prompt template selected at construction.
func (p *Predictor) Template() *Template {
	return p.template
}

// Predict asks the backend for one prediction per college and normalises the
// result. It returns either every prediction or an error.
func (p *Predictor) Predict(ctx context.Context, profile *models.StudentProfile, colleges []string) ([]models.Prediction, error) {
	if profile == nil || len(colleges) == 0 {
		return nil, ErrMissingInput
	}

	prompt := BuildPrompt(p.template, profile, colleges)

	text, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	predictions, err := parsePredictions(text, p.compiled)
	if err != nil {
		return nil, err
	}

	if len(predictions) != len(colleges) {
		return nil, fmt.Errorf("%w: got %d predictions for %d colleges",
			ErrMalformedBackendResponse, len(predictions), len(colleges))
	}

	if n := clampAll(predictions); n > 0 {
		metrics.ClampedPredictions.Add(float64(n))
		p.logger.Debug("clamped out-of-range predictions", zap.Int("count", n))
	}

	return predictions, nil
}

func (p *Predictor) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ctx, span := p.tracer.Start(ctx, "predictor.generate", trace.WithAttributes(
		attribute.String("backend", p.backend.Name()),
		attribute.String("template", p.template.Name),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	text, err := p.backend.Generate(ctx, Request{
		Prompt: prompt,
		Schema: p.schema,
		Safety: p.safety,
	})

	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)):
		err = fmt.Errorf("%w: backend timed out after %s", ErrEmptyBackendResponse, p.timeout)
	case err != nil:
		err = fmt.Errorf("%w: %v", ErrBackendInvocation, err)
	case strings.TrimSpace(text) == "":
		err = fmt.Errorf("%w: backend returned no text", ErrEmptyBackendResponse)
	}

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = ErrorCode(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	metrics.BackendDuration.WithLabelValues(p.backend.Name(), outcome).Observe(time.Since(start).Seconds())

	return text, err
}
