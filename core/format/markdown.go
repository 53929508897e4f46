package format

import (
	"strings"

	"github.com/reportgen/reportgen/core"
)

var _ core.Formatter = (*Markdown)(nil)

type Markdown struct{}

func NewMarkdown() *Markdown {
	return &Markdown{}
}

func (mf *Markdown) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# " + opts.TitleOrDefault(defaultTitle) + "\n\n## Data\n\n")
	if dataset.IsEmpty() {
		b.WriteString("_No data available._\n")
	} else {
		b.WriteString(dataTable(opts.ColumnsOrDefault(dataset.Columns()), dataset.Records()).RenderMarkdown())
		b.WriteString("\n")
	}

	b.WriteString("\n## Statistics\n\n")
	stats := dataset.Statistics()
	if stats.Len() == 0 {
		b.WriteString("_No statistics available._\n")
	} else {
		b.WriteString(statisticsTable(stats).RenderMarkdown())
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
