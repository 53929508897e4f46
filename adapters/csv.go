package adapters

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/reportgen/reportgen/core"
)

// Register client
func init() {
	_ = register(&CSV{}, "local", "csv")
}

var _ core.Adapter = (*CSV)(nil)

// CSV reads a local delimited file whose first row names the columns.
type CSV struct{}

func (*CSV) Connect(params *core.SourceParams) (core.Extractor, error) {
	if params.Location == "" {
		return nil, errors.New("csv: location is required")
	}

	return &csvExtractor{path: params.Location}, nil
}

type csvExtractor struct {
	path string
}

// Extract returns one record per data row. Cells are kept as strings and
// an empty cell stays an empty string. Short rows leave the missing columns null.
func (e *csvExtractor) Extract(_ context.Context) ([]core.Record, error) {
	data, err := readTextFile(e.path)
	if err != nil {
		return nil, err
	}

	return parseCSV(data)
}

func parseCSV(data []byte) ([]core.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records := []core.Record{}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
		}

		row := make(core.Row, 0, max(len(header), len(fields)))
		for _, f := range fields {
			row = append(row, f)
		}
		for len(row) < len(header) {
			row = append(row, nil)
		}

		records = append(records, core.RecordFromRow(header, row))
	}

	return records, nil
}
