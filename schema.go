package webtab

import (
	"bytes"
	"encoding/json"
)

// MaxSchemaFields caps how many schema fields one session may declare.
const MaxSchemaFields = 5

// FieldType identifies the primitive type of a schema field. The tokens are
// what the presentation layer offers; the UI restricts input to this set.
type FieldType string

// Supported field types.
const (
	FieldString FieldType = "str"
	FieldBool   FieldType = "bool"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
)

// SchemaField is one user-declared output field. An empty Name marks an
// unused slot; such fields are skipped when building the schema.
type SchemaField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// SchemaProperty is one named primitive property of a Schema, with Type
// already mapped to its JSON Schema name ("string", "boolean", "integer",
// "number").
type SchemaProperty struct {
	Name string
	Type string
}

// Schema describes the expected extraction output as a flat object of named
// primitive properties. Property order follows field declaration order.
// It marshals to a JSON Schema object and is passed verbatim to the
// extraction service as a shape hint.
type Schema struct {
	Properties []SchemaProperty
}

// jsonTypes maps field type tokens to JSON Schema primitive type names.
var jsonTypes = map[FieldType]string{
	FieldString: "string",
	FieldBool:   "boolean",
	FieldInt:    "integer",
	FieldFloat:  "number",
}

// BuildSchema converts the session's schema fields into a Schema. Fields with
// empty names are skipped. Returns (nil, nil) when no field is named, so the
// caller can omit the schema from the request entirely and let the service
// extract guided by the prompt alone.
//
// A duplicate name takes the type of its last occurrence but keeps the
// position of its first. An unrecognized type token is a contract violation
// by the caller, not a user error, and reports EINTERNAL.
func BuildSchema(fields []SchemaField) (*Schema, error) {
	var props []SchemaProperty
	index := make(map[string]int)
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		jt, ok := jsonTypes[f.Type]
		if !ok {
			return nil, Errorf(EINTERNAL, "unsupported schema field type %q", f.Type)
		}
		if i, seen := index[f.Name]; seen {
			props[i].Type = jt
			continue
		}
		index[f.Name] = len(props)
		props = append(props, SchemaProperty{Name: f.Name, Type: jt})
	}
	if len(props) == 0 {
		return nil, nil
	}
	return &Schema{Properties: props}, nil
}

// MarshalJSON emits the schema as a JSON Schema object. Properties are
// written in declaration order, which encoding/json's map type would not
// preserve; every declared property is required.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)
	names := make([]string, 0, len(s.Properties))
	for i, p := range s.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteString(`:{"type":`)
		typ, err := json.Marshal(p.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(typ)
		buf.WriteByte('}')
		names = append(names, p.Name)
	}
	buf.WriteString(`},"required":`)
	required, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	buf.Write(required)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
