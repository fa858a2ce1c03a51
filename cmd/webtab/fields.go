package main

import (
	"strings"

	"github.com/fwojciec/webtab"
)

// ParseFieldSpec parses a single "name:type" schema field flag. The type
// defaults to str when omitted.
func ParseFieldSpec(spec string) (webtab.SchemaField, error) {
	name, typ, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return webtab.SchemaField{}, webtab.Errorf(webtab.EINVALID, "schema field %q has no name", spec)
	}
	if !found {
		return webtab.SchemaField{Name: name, Type: webtab.FieldString}, nil
	}

	switch ft := webtab.FieldType(strings.TrimSpace(typ)); ft {
	case webtab.FieldString, webtab.FieldBool, webtab.FieldInt, webtab.FieldFloat:
		return webtab.SchemaField{Name: name, Type: ft}, nil
	default:
		return webtab.SchemaField{}, webtab.Errorf(webtab.EINVALID,
			"unsupported field type %q (expected str, bool, int, or float)", strings.TrimSpace(typ))
	}
}

// ParseFieldSpecs parses repeated -F flags into schema fields, enforcing the
// session field cap before any request is made.
func ParseFieldSpecs(specs []string) ([]webtab.SchemaField, error) {
	if len(specs) > webtab.MaxSchemaFields {
		return nil, webtab.Errorf(webtab.EINVALID, "at most %d schema fields are supported", webtab.MaxSchemaFields)
	}
	fields := make([]webtab.SchemaField, 0, len(specs))
	for _, spec := range specs {
		f, err := ParseFieldSpec(spec)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}
