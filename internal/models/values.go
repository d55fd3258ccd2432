package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Value is an optional profile field. It accepts any JSON shape so a
// wrongly-typed field degrades the prompt text instead of failing the decode.
type Value struct {
	text    string
	present bool
}

// NewValue returns a present Value holding s. Blank strings are absent.
func NewValue(s string) Value {
	s = strings.TrimSpace(s)
	return Value{text: s, present: s != ""}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*v = NewValue(s)
	case 't':
		*v = Value{text: "Yes", present: true}
	case 'f':
		*v = Value{text: "No", present: true}
	default:
		// Numbers keep their literal form; arrays and objects are compacted.
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return err
		}
		*v = NewValue(buf.String())
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

// Present reports whether the field carried a non-empty value.
func (v Value) Present() bool {
	return v.present
}

func (v Value) String() string {
	return v.text
}

// Or returns the value text, or fallback when the field is absent.
func (v Value) Or(fallback string) string {
	if !v.present {
		return fallback
	}
	return v.text
}

// List is an ordered sequence of optional values. A single scalar is read as
// a one-element list and null as an empty one.
type List []Value

func (l *List) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*l = nil
		return nil
	}

	if raw[0] != '[' {
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return err
		}
		*l = List{v}
		return nil
	}

	var items []Value
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Items returns the present values as strings, preserving order.
func (l List) Items() []string {
	items := make([]string, 0, len(l))
	for _, v := range l {
		if v.Present() {
			items = append(items, v.String())
		}
	}
	return items
}

// Join joins the present values with ", ", or returns fallback if none.
func (l List) Join(fallback string) string {
	items := l.Items()
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
