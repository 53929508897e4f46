package format

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/reportgen/reportgen/core"
)

var _ core.Formatter = (*Text)(nil)

// Text renders a plain text report: a data table followed by a statistics table.
type Text struct{}

func NewText() *Text {
	return &Text{}
}

func (tf *Text) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	var b strings.Builder

	title := opts.TitleOrDefault(defaultTitle)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", text.RuneWidthWithoutEscSequences(title)) + "\n\n")

	if dataset.IsEmpty() {
		b.WriteString("No data available.\n")
	} else {
		b.WriteString(dataTable(opts.ColumnsOrDefault(dataset.Columns()), dataset.Records()).Render())
		b.WriteString("\n")
	}

	b.WriteString("\nStatistics\n")
	stats := dataset.Statistics()
	if stats.Len() == 0 {
		b.WriteString("No statistics available.\n")
	} else {
		b.WriteString(statisticsTable(stats).Render())
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
