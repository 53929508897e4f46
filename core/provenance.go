package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProvenanceMap records which sources contributed each column.
// Columns keep first-seen order across the source list; the sources of a
// column are deduplicated by ID and keep first-seen order too.
type ProvenanceMap struct {
	columns []string
	sources map[string][]*Source
}

func newProvenanceMap() *ProvenanceMap {
	return &ProvenanceMap{
		sources: make(map[string][]*Source),
	}
}

func (p *ProvenanceMap) add(column string, source *Source) {
	existing, ok := p.sources[column]
	if !ok {
		p.columns = append(p.columns, column)
	}

	for _, s := range existing {
		if s.GetID() == source.GetID() {
			return
		}
	}
	p.sources[column] = append(existing, source)
}

// Columns returns every column in first-seen order.
func (p *ProvenanceMap) Columns() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Sources returns the sources that contributed the column.
func (p *ProvenanceMap) Sources(column string) []*Source {
	if p == nil {
		return nil
	}
	src := p.sources[column]
	out := make([]*Source, len(src))
	copy(out, src)
	return out
}

// SourceIDs is Sources mapped to IDs.
func (p *ProvenanceMap) SourceIDs(column string) []SourceID {
	if p == nil {
		return nil
	}
	var ids []SourceID
	for _, s := range p.sources[column] {
		ids = append(ids, s.GetID())
	}
	return ids
}

func (p *ProvenanceMap) Has(column string) bool {
	if p == nil {
		return false
	}
	_, ok := p.sources[column]
	return ok
}

func (p *ProvenanceMap) Len() int {
	if p == nil {
		return 0
	}
	return len(p.columns)
}

// MarshalJSON encodes the map as {column: [source ids...]} in column order.
func (p *ProvenanceMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range p.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, col); err != nil {
			return nil, err
		}

		ids := p.SourceIDs(col)
		if ids == nil {
			ids = []SourceID{}
		}
		b, err := json.Marshal(ids)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
