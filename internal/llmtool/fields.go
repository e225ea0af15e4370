package llmtool

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldsFromStruct derives the prompt output contract from a result struct.
// Field names come from the `json` tag, descriptions from `prompt_desc`,
// type overrides from `prompt_type`. A `prompt:"-"` tag skips the field and
// `prompt:"optional"` clears the required flag.
func FieldsFromStruct(v any) ([]PromptField, error) {
	if v == nil {
		return nil, fmt.Errorf("llmtool: struct is nil")
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("llmtool: expected struct, got %s", t.Kind())
	}
	fields := make([]PromptField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		promptTag := strings.TrimSpace(f.Tag.Get("prompt"))
		if promptTag == "-" {
			continue
		}
		name := f.Name
		if jt := strings.Split(f.Tag.Get("json"), ",")[0]; jt != "" {
			if jt == "-" {
				continue
			}
			name = jt
		}
		typ := strings.TrimSpace(f.Tag.Get("prompt_type"))
		if typ == "" {
			typ = typeString(f.Type)
		}
		fields = append(fields, PromptField{
			Name:        name,
			Type:        typ,
			Required:    promptTag != "optional",
			Description: strings.TrimSpace(f.Tag.Get("prompt_desc")),
		})
	}
	return fields, nil
}

// MustFieldsFromStruct panics on error; used for prompt spec literals.
func MustFieldsFromStruct(v any) []PromptField {
	fields, err := FieldsFromStruct(v)
	if err != nil {
		panic(err)
	}
	return fields
}

func typeString(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "[]" + typeString(t.Elem())
	case reflect.Struct:
		if t.Name() != "" {
			return t.Name()
		}
		return "object"
	default:
		return t.Kind().String()
	}
}
