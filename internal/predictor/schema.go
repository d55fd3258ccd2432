package predictor

import "strings"

type Type string

const (
	TypeString  Type = "STRING"
	TypeInteger Type = "INTEGER"
	TypeNumber  Type = "NUMBER"
	TypeBoolean Type = "BOOLEAN"
	TypeArray   Type = "ARRAY"
	TypeObject  Type = "OBJECT"
)

// Schema describes the structured output requested from the backend. The
// gemini adapters translate it to their SDK types and the predictor validates
// payloads against its JSON Schema form.
type Schema struct {
	Type             Type
	Description      string
	Properties       map[string]*Schema
	PropertyOrdering []string
	Required         []string
	Items            *Schema
}

// JSONSchema renders s as a JSON Schema document.
func (s *Schema) JSONSchema() map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}

	out := map[string]interface{}{
		"type": strings.ToLower(string(s.Type)),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		required := make([]interface{}, len(s.Required))
		for i, name := range s.Required {
			required[i] = name
		}
		out["required"] = required
	}
	return out
}

// OutputSchema returns the prediction array schema for a reasoning shape.
func OutputSchema(shape ReasoningShape) *Schema {
	reasoning := &Schema{
		Type:        TypeString,
		Description: "Brief reasoning for the predicted chance.",
	}
	if shape == ReasoningStructured {
		reasoning = &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"strengths":  {Type: TypeString, Description: "Strengths of the application for this college."},
				"weaknesses": {Type: TypeString, Description: "Weaknesses or concerns for this college."},
				"advice":     {Type: TypeString, Description: "Actionable advice to improve the chance."},
			},
			PropertyOrdering: []string{"strengths", "weaknesses", "advice"},
			Required:         []string{"strengths", "weaknesses", "advice"},
		}
	}

	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"college_name":             {Type: TypeString},
				"admission_chance_percent": {Type: TypeInteger},
				"reasoning":                reasoning,
			},
			PropertyOrdering: []string{"college_name", "admission_chance_percent", "reasoning"},
			Required:         []string{"college_name", "admission_chance_percent", "reasoning"},
		},
	}
}
