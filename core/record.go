package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record is a single observation: an ordered mapping of column name to value.
// A nil value is an explicit null. Records are immutable once built.
type Record struct {
	columns []string
	values  map[string]any
}

// NewRecord builds a record from alternating column/value pairs:
//
//	NewRecord("id", 1, "product", "A")
//
// It panics if a column is not a string or a value is missing.
func NewRecord(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic("core.NewRecord: odd number of arguments")
	}

	header := make(Header, 0, len(pairs)/2)
	row := make(Row, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		col, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("core.NewRecord: column at position %d is not a string", i))
		}
		header = append(header, col)
		row = append(row, pairs[i+1])
	}

	return RecordFromRow(header, row)
}

// RecordFromRow pairs a header with a positional row.
// Extra values without a header are named "<unknown-field-N>".
// Duplicate header names keep their first position and the last value.
func RecordFromRow(header Header, row Row) Record {
	r := Record{
		columns: make([]string, 0, len(row)),
		values:  make(map[string]any, len(row)),
	}

	for i, val := range row {
		var col string
		if i < len(header) {
			col = header[i]
		} else {
			col = fmt.Sprintf("<unknown-field-%d>", i)
		}

		if _, ok := r.values[col]; !ok {
			r.columns = append(r.columns, col)
		}
		r.values[col] = val
	}

	return r
}

// Columns returns the record's keys in insertion order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Get returns the value of a column and whether the key is present.
// A present key may still hold a nil (null) value.
func (r Record) Get(column string) (any, bool) {
	val, ok := r.values[column]
	return val, ok
}

// Value returns the value of a column, nil if absent or null.
func (r Record) Value(column string) any {
	return r.values[column]
}

// Has reports whether the column key is present.
func (r Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

func (r Record) Len() int {
	return len(r.columns)
}

// Project returns a new record holding only the listed columns that
// exist in r, in the order given.
func (r Record) Project(columns []string) Record {
	var header Header
	var row Row
	for _, col := range columns {
		val, ok := r.values[col]
		if !ok {
			continue
		}
		header = append(header, col)
		row = append(row, val)
	}
	return RecordFromRow(header, row)
}

func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprint(r.values)
	}
	return string(b)
}

// MarshalJSON encodes the record as an object preserving column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, col); err != nil {
			return nil, err
		}

		val, err := json.Marshal(jsonValue(r.values[col]))
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: column %q: %w", col, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeJSONKey writes an object key and the colon after it.
func writeJSONKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("json.Marshal: key %q: %w", key, err)
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

// jsonValue replaces NaN and infinities with null, since JSON has no
// literal for them.
func jsonValue(val any) any {
	switch v := val.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil
		}
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonValue(item)
		}
		return out
	}
	return val
}

// ProjectRecords maps Project over a record slice.
func ProjectRecords(records []Record, columns []string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Project(columns))
	}
	return out
}

// FormatValue renders a single value for text output. Null renders as "".
func FormatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
