package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// PredictionRequest is the body of POST /get-predictions. Fields stay raw so
// presence can be checked before typed decoding.
type PredictionRequest struct {
	Profile  json.RawMessage `json:"profile"`
	Colleges json.RawMessage `json:"colleges"`
}

type PredictionResponse struct {
	Predictions []Prediction `json:"predictions"`
}

type Prediction struct {
	CollegeName            string    `json:"college_name"`
	AdmissionChancePercent int       `json:"admission_chance_percent"`
	Reasoning              Reasoning `json:"reasoning"`
}

// UnmarshalJSON accepts any JSON number for the chance. Fractions are
// rounded and values beyond the int32 range saturate, so a later clamp
// always sees an int.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	type plain Prediction
	aux := struct {
		*plain
		AdmissionChancePercent json.Number `json:"admission_chance_percent"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	percent, err := chancePercent(aux.AdmissionChancePercent)
	if err != nil {
		return err
	}
	p.AdmissionChancePercent = percent
	return nil
}

func chancePercent(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("admission_chance_percent: %w", err)
	}

	f = math.Round(f)
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, nil
	case f < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(f), nil
}

type StructuredReasoning struct {
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
	Advice     string `json:"advice"`
}

// Reasoning is either free text or a structured breakdown. Exactly one shape
// is used per deployment.
type Reasoning struct {
	Text       string
	Structured *StructuredReasoning
}

func (r Reasoning) MarshalJSON() ([]byte, error) {
	if r.Structured != nil {
		return json.Marshal(r.Structured)
	}
	return json.Marshal(r.Text)
}

func (r *Reasoning) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return errors.New("empty reasoning")
	}

	switch raw[0] {
	case '"':
		*r = Reasoning{}
		return json.Unmarshal(raw, &r.Text)
	case '{':
		var s StructuredReasoning
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*r = Reasoning{Structured: &s}
		return nil
	default:
		return errors.New("reasoning must be a string or an object")
	}
}
