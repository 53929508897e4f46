package core

import (
	"encoding/json"
	"fmt"
)

// Dataset is the consolidated output handed to formatters.
// It is immutable: every accessor returns a copy.
type Dataset struct {
	records    []Record
	provenance *ProvenanceMap
	statistics *Statistics
}

// NewDataset assembles a dataset from already consolidated parts.
// Statistics are computed from the records.
func NewDataset(records []Record, provenance *ProvenanceMap) *Dataset {
	if provenance == nil {
		provenance = newProvenanceMap()
	}
	recs := make([]Record, len(records))
	copy(recs, records)

	return &Dataset{
		records:    recs,
		provenance: provenance,
		statistics: ComputeStatistics(recs),
	}
}

func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Dataset) Provenance() *ProvenanceMap {
	return d.provenance
}

func (d *Dataset) Statistics() *Statistics {
	return d.statistics
}

// Columns returns the display order: first-seen across sources in source order.
func (d *Dataset) Columns() []string {
	return d.provenance.Columns()
}

func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Project returns the records reduced to the given columns.
func (d *Dataset) Project(columns []string) []Record {
	return ProjectRecords(d.records, columns)
}

func (d *Dataset) Format(formatter Formatter, opts *FormatterOptions) ([]byte, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}

	f, err := formatter.Format(d, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

func (d *Dataset) MarshalJSON() ([]byte, error) {
	records := d.records
	if records == nil {
		records = []Record{}
	}

	return json.Marshal(struct {
		Records    []Record       `json:"records"`
		Provenance *ProvenanceMap `json:"provenance"`
		Statistics *Statistics    `json:"statistics"`
	}{
		Records:    records,
		Provenance: d.provenance,
		Statistics: d.statistics,
	})
}
