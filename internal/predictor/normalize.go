package predictor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/admissions-predictor/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

const (
	MinChancePercent = 5
	MaxChancePercent = 70
)

// Clamp forces an admission chance into [MinChancePercent, MaxChancePercent].
func Clamp(percent int) int {
	if percent < MinChancePercent {
		return MinChancePercent
	}
	if percent > MaxChancePercent {
		return MaxChancePercent
	}
	return percent
}

// CleanJSON strips a surrounding markdown code fence from model output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// compileSchema compiles the JSON Schema form of s for repeated validation.
func compileSchema(s *Schema) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile output schema: %w", err)
	}
	return compiled, nil
}

// parsePredictions validates payload against schema and decodes it.
func parsePredictions(payload string, schema *gojsonschema.Schema) ([]models.Prediction, error) {
	cleaned := CleanJSON(payload)

	result, err := schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackendResponse, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: schema violations: %v", ErrMalformedBackendResponse, errs)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal([]byte(cleaned), &predictions); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedBackendResponse, err)
	}
	return predictions, nil
}

// clampAll clamps every prediction in place and returns how many changed.
func clampAll(predictions []models.Prediction) int {
	changed := 0
	for i := range predictions {
		clamped := Clamp(predictions[i].AdmissionChancePercent)
		if clamped != predictions[i].AdmissionChancePercent {
			predictions[i].AdmissionChancePercent = clamped
			changed++
		}
	}
	return changed
}
