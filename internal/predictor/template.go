package predictor

import (
	"fmt"
	"sort"
)

type ReasoningShape int

const (
	ReasoningText ReasoningShape = iota
	ReasoningStructured
)

func (s ReasoningShape) String() string {
	if s == ReasoningStructured {
		return "structured"
	}
	return "text"
}

// Template pairs an instruction block with the reasoning shape its output
// schema expects.
type Template struct {
	Name         string
	Description  string
	Instructions string
	Reasoning    ReasoningShape
}

// Schema returns the output schema matching the template.
func (t *Template) Schema() *Schema {
	return OutputSchema(t.Reasoning)
}

const DefaultTemplate = "v5"

const basicInstructions = `You are an expert college admissions counselor. Based on the following student profile, predict the admission chances for each university in the target list. For each prediction, provide a percentage chance and a brief, two-sentence reasoning.

Every admission_chance_percent MUST be an integer between 5 and 70 inclusive.`

const structuredInstructions = `You are an expert college admissions counselor. Review the following student profile holistically, weighing demographics, academics, extracurricular activities and awards together, and predict the admission chances for each university in the target list.

For each prediction:
- Give an integer admission_chance_percent between 5 and 70 inclusive.
- Split the reasoning into exactly three parts: "strengths", "weaknesses" and "advice".`

const gpaTrendInstructions = `You are an expert college admissions counselor. Review the following student profile holistically, weighing demographics, academics, extracurricular activities and awards together, and predict the admission chances for each university in the target list.

Rules:
1. Look at the GPA trend across the grade levels provided. An upward trend is a positive signal; a downward trend is a concern. Mention the trend explicitly in the reasoning.
2. Split every reasoning into exactly three parts: "strengths", "weaknesses" and "advice".
3. Every admission_chance_percent MUST be an integer between 5 and 70 inclusive.`

const activityQualityInstructions = `You are an expert college admissions counselor. Review the following student profile holistically, weighing demographics, academics, extracurricular activities, awards and any unifying "spike" theme that connects them, and predict the admission chances for each university in the target list.

Rules:
1. Judge extracurriculars and awards on quality, depth and consistency, not on how many there are. Call out a clear spike when the activities share one theme.
2. Look at the GPA trend across the grade levels provided. An upward trend is a positive signal; a downward trend is a concern. Mention the trend explicitly in the reasoning.
3. Do not give the same chance to several highly selective colleges. Differentiate them using specific programs, culture and fit with this student.
4. Split every reasoning into exactly three parts: "strengths", "weaknesses" and "advice".
5. Every admission_chance_percent MUST be an integer between 5 and 70 inclusive.`

const missingDataInstructions = `You are an expert college admissions counselor. Review the following student profile holistically, weighing demographics, academics, extracurricular activities, awards and any unifying "spike" theme that connects them, and predict the admission chances for each university in the target list.

Rules:
1. Judge extracurriculars and awards on quality, depth and consistency, not on how many there are. Call out a clear spike when the activities share one theme.
2. If the standardized test score is "Not provided", treat it as a major negative factor and say so explicitly in the weaknesses.
3. Look at the GPA trend across the grade levels provided. An upward trend is a positive signal; a downward trend is a concern. Mention the trend explicitly in the reasoning.
4. Do not give the same chance to several highly selective colleges. Differentiate them using specific programs, culture and fit with this student.
5. Split every reasoning into exactly three parts: "strengths", "weaknesses" and "advice".
6. Every admission_chance_percent MUST be an integer between 5 and 70 inclusive.`

var templates = map[string]*Template{
	"v1": {
		Name:         "v1",
		Description:  "plain prediction with two-sentence reasoning",
		Instructions: basicInstructions,
		Reasoning:    ReasoningText,
	},
	"v2": {
		Name:         "v2",
		Description:  "holistic review with strengths, weaknesses and advice",
		Instructions: structuredInstructions,
		Reasoning:    ReasoningStructured,
	},
	"v3": {
		Name:         "v3",
		Description:  "adds GPA trend analysis",
		Instructions: gpaTrendInstructions,
		Reasoning:    ReasoningStructured,
	},
	"v4": {
		Name:         "v4",
		Description:  "adds activity quality, spike theme and selective-college differentiation",
		Instructions: activityQualityInstructions,
		Reasoning:    ReasoningStructured,
	},
	"v5": {
		Name:         "v5",
		Description:  "adds missing test score penalty",
		Instructions: missingDataInstructions,
		Reasoning:    ReasoningStructured,
	},
}

// LookupTemplate returns the named template. An empty name selects the
// default.
func LookupTemplate(name string) (*Template, error) {
	if name == "" {
		name = DefaultTemplate
	}
	t, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown prompt template %q (available: %v)", name, TemplateNames())
	}
	return t, nil
}

func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
