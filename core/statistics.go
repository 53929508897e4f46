package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnStatistics summarizes one column. Min and Max are nil when no value
// in the column could be coerced to a number.
type ColumnStatistics struct {
	Min        *float64
	Max        *float64
	BlankCount int
}

func (cs ColumnStatistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min        *float64 `json:"min"`
		Max        *float64 `json:"max"`
		BlankCount int      `json:"blank_count"`
	}{
		Min:        cs.Min,
		Max:        cs.Max,
		BlankCount: cs.BlankCount,
	})
}

// Statistics maps every column of a record sequence to its summary.
type Statistics struct {
	columns  []string
	byColumn map[string]ColumnStatistics
}

// Get returns the summary of a column.
func (s *Statistics) Get(column string) (ColumnStatistics, bool) {
	if s == nil {
		return ColumnStatistics{}, false
	}
	cs, ok := s.byColumn[column]
	return cs, ok
}

// Columns returns the summarized columns in first-seen record order.
func (s *Statistics) Columns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func (s *Statistics) Len() int {
	if s == nil {
		return 0
	}
	return len(s.columns)
}

// MarshalJSON encodes the statistics as an object in column order.
func (s *Statistics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range s.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, col); err != nil {
			return nil, err
		}

		b, err := json.Marshal(s.byColumn[col])
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// ComputeStatistics summarizes every column that appears in any record.
//
// An absent key and an explicit null both count as blank. Every other value
// is coerced with ToFloat; values that don't coerce are left out of min/max
// but are not blanks.
func ComputeStatistics(records []Record) *Statistics {
	stats := &Statistics{
		byColumn: make(map[string]ColumnStatistics),
	}
	if len(records) == 0 {
		return stats
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		for _, col := range r.columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			stats.columns = append(stats.columns, col)
		}
	}

	for _, col := range stats.columns {
		stats.byColumn[col] = computeColumn(records, col)
	}

	return stats
}

func computeColumn(records []Record, column string) ColumnStatistics {
	var (
		cs      ColumnStatistics
		lo, hi  float64
		numeric bool
	)

	for _, r := range records {
		val := r.Value(column)
		if val == nil {
			cs.BlankCount++
			continue
		}

		f, ok := ToFloat(val)
		if !ok {
			continue
		}

		if !numeric {
			lo, hi = f, f
			numeric = true
			continue
		}
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}

	if numeric {
		cs.Min = &lo
		cs.Max = &hi
	}

	return cs
}

// ToFloat coerces a value to float64 where that is meaningful: Go numeric
// kinds, json.Number and strings that parse as a finite decimal number after
// trimming whitespace. Booleans, NaN and infinities are not numeric.
func ToFloat(val any) (float64, bool) {
	var f float64

	switch v := val.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		return parseFloat(v)
	case []byte:
		return parseFloat(string(v))
	case fmt.Stringer:
		return parseFloat(v.String())
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isHexLiteral(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isHexLiteral reports a "0x" prefixed number, optionally signed.
// Such strings are text, not decimal numbers.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
