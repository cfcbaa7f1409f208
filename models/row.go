package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one order line: column name to display value, keeping column order.
// JSON objects decode in document order, so the first row of a payload gives the
// table header order.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow builds a row from alternating key, value pairs
func NewRow(pairs ...string) Row {
	var r Row
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set assigns a value, appending the key when it is new
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether the key is present
func (r Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" when absent
func (r Row) Value(key string) string {
	return r.values[key]
}

// Keys returns the column names in insertion order
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of columns in the row
func (r Row) Len() int {
	return len(r.keys)
}

// Project returns the row's values laid out on the given columns; absent columns are ""
func (r Row) Project(columns []string) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = r.values[col]
	}
	return cells
}

// MarshalJSON writes the row as an object with keys in row order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping key order. Strings are taken as is, null becomes
// a blank cell, any other JSON value is kept as its literal text.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("order row: expected object, got %v", tok)
	}

	*r = Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("order row: expected key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("order row: value for %q: %w", key, err)
		}
		value, present := CellText(raw)
		if present {
			r.Set(key, value)
		}
	}

	_, err = dec.Token()
	return err
}

// CellText converts a raw JSON value to display text. null is present and blank.
func CellText(raw []byte) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return "", true
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s, true
		}
	}
	return string(trimmed), true
}
