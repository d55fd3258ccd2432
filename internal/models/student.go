package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type StudentProfile struct {
	Gender   Value       `json:"gender"`
	Citizen  Value       `json:"citizen"`
	USSchool Value       `json:"usSchool"`
	GPA      Value       `json:"gpa"`
	GPA9     Value       `json:"gpa9"`
	GPA10    Value       `json:"gpa10"`
	GPA11    Value       `json:"gpa11"`
	SAT      Value       `json:"sat"`
	APScores ExamResults `json:"apScores"`
	ECs      List        `json:"ecs"`
	Awards   List        `json:"awards"`
}

// GradeGPA is the GPA recorded for one grade level.
type GradeGPA struct {
	Grade string
	GPA   string
}

// GradeGPAs returns the per-grade GPAs that were provided, oldest first.
func (p *StudentProfile) GradeGPAs() []GradeGPA {
	grades := []struct {
		label string
		value Value
	}{
		{"9th", p.GPA9},
		{"10th", p.GPA10},
		{"11th", p.GPA11},
	}

	var out []GradeGPA
	for _, g := range grades {
		if g.value.Present() {
			out = append(out, GradeGPA{Grade: g.label, GPA: g.value.String()})
		}
	}
	return out
}

type ExamResult struct {
	Subject Value `json:"subject"`
	Score   Value `json:"score"`
}

func (r ExamResult) String() string {
	switch {
	case r.Subject.Present() && r.Score.Present():
		return r.Subject.String() + ": " + r.Score.String()
	case r.Subject.Present():
		return r.Subject.String()
	default:
		return "Unknown subject: " + r.Score.Or("no score")
	}
}

// ExamResults holds supplementary exam results. Any JSON shape other than an
// array decodes to an empty list.
type ExamResults []ExamResult

func (e *ExamResults) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] != '[' {
		*e = nil
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return err
	}

	out := make(ExamResults, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '{' {
			var r ExamResult
			if err := json.Unmarshal(elem, &r); err != nil {
				return err
			}
			if r.Subject.Present() || r.Score.Present() {
				out = append(out, r)
			}
			continue
		}

		var subject Value
		if err := subject.UnmarshalJSON(elem); err != nil {
			return err
		}
		if subject.Present() {
			out = append(out, ExamResult{Subject: subject})
		}
	}
	*e = out
	return nil
}

// Join renders the results as "Subject: score" pairs, or fallback if empty.
func (e ExamResults) Join(fallback string) string {
	if len(e) == 0 {
		return fallback
	}
	parts := make([]string, len(e))
	for i, r := range e {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
