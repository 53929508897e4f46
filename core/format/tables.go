package format

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/reportgen/reportgen/core"
)

const (
	defaultTitle = "Sales Report"

	notAvailable = "N/A"
)

// dataTable lays out the records over the given columns.
// Missing and null values are rendered empty.
func dataTable(columns []string, records []core.Record) table.Writer {
	header := make(table.Row, 0, len(columns))
	for _, col := range columns {
		header = append(header, col)
	}

	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		row := make(table.Row, 0, len(columns))
		for _, col := range columns {
			row = append(row, core.FormatValue(rec.Value(col)))
		}
		rows = append(rows, row)
	}

	t := newWriter()
	t.AppendHeader(header)
	t.AppendRows(rows)
	return t
}

// statisticsTable has one row per column: name, min, max and blank count.
func statisticsTable(stats *core.Statistics) table.Writer {
	t := newWriter()
	t.AppendHeader(table.Row{"Column", "Min", "Max", "Blanks"})

	for _, col := range stats.Columns() {
		cs, _ := stats.Get(col)
		t.AppendRow(table.Row{col, formatStat(cs.Min), formatStat(cs.Max), strconv.Itoa(cs.BlankCount)})
	}
	return t
}

func formatStat(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return core.FormatValue(*v)
}

func newWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.SuppressTrailingSpaces()
	return t
}
