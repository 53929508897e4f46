package format

import (
	"encoding/json"
	"fmt"

	"github.com/reportgen/reportgen/core"
)

var _ core.Formatter = (*JSON)(nil)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	records := dataset.Records()
	if opts != nil && len(opts.Columns) > 0 {
		records = core.ProjectRecords(records, opts.Columns)
	}

	data := struct {
		Records    []core.Record       `json:"records"`
		Provenance *core.ProvenanceMap `json:"provenance"`
		Statistics *core.Statistics    `json:"statistics"`
	}{
		Records:    records,
		Provenance: dataset.Provenance(),
		Statistics: dataset.Statistics(),
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
