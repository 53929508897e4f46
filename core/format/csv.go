package format

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/reportgen/reportgen/core"
)

var _ core.Formatter = (*CSV)(nil)

var ErrNoRecords = errors.New("no records to format")

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) parse(columns []string, records []core.Record) [][]string {
	data := [][]string{
		columns,
	}
	for _, rec := range records {
		csvRow := make([]string, 0, len(columns))
		for _, col := range columns {
			csvRow = append(csvRow, core.FormatValue(rec.Value(col)))
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	if dataset.IsEmpty() {
		return nil, fmt.Errorf("csv: %w", ErrNoRecords)
	}

	data := cf.parse(opts.ColumnsOrDefault(dataset.Columns()), dataset.Records())

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
