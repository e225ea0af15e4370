package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"
)

// Kind identifies the JSON type a field must carry.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Integer Kind = "integer"
	Boolean Kind = "boolean"
	Array   Kind = "array"
)

// Field declares the constraints for one output field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Min/Max bound numeric fields. When Clamp is set an out-of-range value
	// is pulled into the range instead of rejected; a missing required field
	// is still a hard failure either way.
	Min, Max *float64
	Clamp    bool
	// Enum restricts a string field to a closed value set.
	Enum []string
	// MaxLen caps a string field's length in runes. 0 means unlimited.
	MaxLen int
	// Items validates each element of an array field. MaxItems > 0 truncates
	// the array rather than rejecting it.
	Items    *Schema
	MaxItems int
}

// Schema is an ordered set of field constraints for one JSON object.
type Schema struct {
	Fields []Field
}

// FieldError names the first violated field and a human-readable reason.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
}

func violation(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Bounds is a convenience constructor for Min/Max pointers.
func Bounds(min, max float64) (*float64, *float64) {
	return &min, &max
}

// Validate checks raw against the schema and returns the value with numbers
// coerced (and clamped where declared). Unknown fields pass through untouched;
// the first violated field aborts validation.
func (s *Schema) Validate(raw json.RawMessage) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &FieldError{Field: "", Reason: "not a JSON object: " + err.Error()}
	}
	for _, f := range s.Fields {
		v, ok := obj[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, violation(f.Name, "required field is missing")
			}
			continue
		}
		coerced, err := f.check(v)
		if err != nil {
			return nil, err
		}
		obj[f.Name] = coerced
	}
	return obj, nil
}

func (f *Field) check(v any) (any, error) {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, violation(f.Name, "expected string, got %T", v)
		}
		if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
			s = string([]rune(s)[:f.MaxLen])
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return nil, violation(f.Name, "value %q not in %v", s, f.Enum)
		}
		return s, nil
	case Number, Integer:
		n, ok := v.(float64)
		if !ok {
			return nil, violation(f.Name, "expected number, got %T", v)
		}
		if f.Kind == Integer {
			n = math.Round(n)
		}
		if f.Min != nil && n < *f.Min {
			if !f.Clamp {
				return nil, violation(f.Name, "value %v below minimum %v", n, *f.Min)
			}
			n = *f.Min
		}
		if f.Max != nil && n > *f.Max {
			if !f.Clamp {
				return nil, violation(f.Name, "value %v above maximum %v", n, *f.Max)
			}
			n = *f.Max
		}
		return n, nil
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, violation(f.Name, "expected boolean, got %T", v)
		}
		return b, nil
	case Array:
		items, ok := v.([]any)
		if !ok {
			return nil, violation(f.Name, "expected array, got %T", v)
		}
		if f.MaxItems > 0 && len(items) > f.MaxItems {
			items = items[:f.MaxItems]
		}
		if f.Items != nil {
			for i, item := range items {
				b, err := json.Marshal(item)
				if err != nil {
					return nil, violation(f.Name, "element %d: %v", i, err)
				}
				checked, err := f.Items.Validate(b)
				if err != nil {
					var fe *FieldError
					if ok := asFieldError(err, &fe); ok {
						return nil, violation(fmt.Sprintf("%s[%d].%s", f.Name, i, fe.Field), "%s", fe.Reason)
					}
					return nil, err
				}
				items[i] = checked
			}
		}
		return items, nil
	default:
		return nil, violation(f.Name, "unknown field kind %q", f.Kind)
	}
}

func asFieldError(err error, target **FieldError) bool {
	fe, ok := err.(*FieldError)
	if ok {
		*target = fe
	}
	return ok
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Decode validates raw and unmarshals the coerced object into out.
func (s *Schema) Decode(raw json.RawMessage, out any) error {
	obj, err := s.Validate(raw)
	if err != nil {
		return err
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
