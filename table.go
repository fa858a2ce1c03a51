package webtab

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Row maps column names to cell values for one table row.
type Row map[string]any

// Table is an ordered sequence of rows. Columns is the union of row keys in
// first-seen order and defines the rendering order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Normalize shapes the data payload of an extraction response into a Table.
// The payload varies; the recognized shapes, in precedence order:
//
//  1. a list of objects: each element becomes one row;
//  2. an object with a list-valued key: the first such key's list (in
//     document key order) becomes the rows — this handles results that wrap
//     records under a named key like "products";
//  3. any other object: the object itself is the single row.
//
// Anything else — absent payload, scalar, or a list holding non-objects —
// reports ok=false, meaning the caller should fall back to rendering the raw
// response as plain text. Normalize never fails on malformed input.
func Normalize(data json.RawMessage) (_ *Table, ok bool) {
	b := bytes.TrimSpace(data)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, false
	}
	switch b[0] {
	case '[':
		return tableFromList(b)
	case '{':
		fields, err := parseObjectFields(b)
		if err != nil {
			return nil, false
		}
		for _, f := range fields {
			if v := bytes.TrimSpace(f.value); len(v) > 0 && v[0] == '[' {
				return tableFromList(v)
			}
		}
		return tableFromObjects([][]objectField{fields}), true
	}
	return nil, false
}

// Render writes the table as a padded markdown table: a header row, a rule,
// and one line per data row. Output is deterministic for the same table. A
// table with zero rows renders as an empty string so "nothing extracted"
// stays distinguishable from the raw-text fallback.
func (t *Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	cells := make([][]string, len(t.Rows))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for ri, row := range t.Rows {
		cells[ri] = make([]string, len(t.Columns))
		for ci, col := range t.Columns {
			s := formatCell(row[col])
			cells[ri][ci] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	var sb strings.Builder
	writeLine := func(vals []string) {
		for i, v := range vals {
			sb.WriteString("| ")
			sb.WriteString(v)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(v)))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeLine(t.Columns)
	for i := range t.Columns {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat("-", widths[i]+2))
	}
	sb.WriteString("|\n")
	for _, row := range cells {
		writeLine(row)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// formatCell renders one scalar cell. Missing values render empty; nested
// structures render as compact JSON.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// objectField is one key/value pair of a JSON object in document order.
// encoding/json's map decoding would destroy key order, which both the
// first-list-key rule and first-seen column order depend on.
type objectField struct {
	name  string
	value json.RawMessage
}

// parseObjectFields decodes a JSON object into its fields in document order.
func parseObjectFields(raw []byte) ([]objectField, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, Errorf(EINVALID, "not a JSON object")
	}
	var fields []objectField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, Errorf(EINVALID, "malformed JSON object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, objectField{name: name, value: value})
	}
	return fields, nil
}

// tableFromList builds a table from a JSON list of objects. A list holding
// anything other than objects is not tabular and reports ok=false. An empty
// list is a valid zero-row table.
func tableFromList(raw []byte) (*Table, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	objs := make([][]objectField, 0, len(elems))
	for _, e := range elems {
		v := bytes.TrimSpace(e)
		if len(v) == 0 || v[0] != '{' {
			return nil, false
		}
		fields, err := parseObjectFields(v)
		if err != nil {
			return nil, false
		}
		objs = append(objs, fields)
	}
	return tableFromObjects(objs), true
}

// tableFromObjects assembles rows from parsed objects, collecting columns in
// first-seen order across all rows.
func tableFromObjects(objs [][]objectField) *Table {
	t := &Table{}
	seen := make(map[string]bool)
	for _, fields := range objs {
		row := make(Row, len(fields))
		for _, f := range fields {
			if !seen[f.name] {
				seen[f.name] = true
				t.Columns = append(t.Columns, f.name)
			}
			var v any
			if err := json.Unmarshal(f.value, &v); err != nil {
				v = string(f.value)
			}
			row[f.name] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
