package format

import (
	"html"
	"strings"

	"github.com/reportgen/reportgen/core"
)

var _ core.Formatter = (*HTML)(nil)

// HTML renders a complete HTML document with a data and a statistics table.
type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

const htmlStyle = `    <style>
        body { font-family: sans-serif; margin: 20px; }
        h1, h2 { color: #333; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        .statistics-section { margin-top: 40px; }
        .statistics-section table { width: auto; }
    </style>`

func (hf *HTML) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	title := html.EscapeString(opts.TitleOrDefault(defaultTitle))

	lines := []string{
		"<!DOCTYPE html>",
		"<html>",
		"<head>",
		"    <meta charset='UTF-8'>",
		"    <title>" + title + "</title>",
		htmlStyle,
		"</head>",
		"<body>",
		"    <h1>" + title + "</h1>",
		"    <h2>Data</h2>",
	}

	if dataset.IsEmpty() {
		lines = append(lines, "    <p>No data available.</p>")
	} else {
		t := dataTable(opts.ColumnsOrDefault(dataset.Columns()), dataset.Records())
		t.Style().HTML.CSSClass = "data-table"
		lines = append(lines, t.RenderHTML())
	}

	lines = append(lines, "    <div class='statistics-section'>", "    <h2>Statistics</h2>")
	stats := dataset.Statistics()
	if stats.Len() == 0 {
		lines = append(lines, "    <p>No statistics available.</p>")
	} else {
		t := statisticsTable(stats)
		t.Style().HTML.CSSClass = "statistics-table"
		lines = append(lines, t.RenderHTML())
	}
	lines = append(lines, "    </div>", "</body>", "</html>")

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
