package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

var errNoQuery = errors.New("sql source needs a query or a data_key table")

// sqlExtractor runs one query and returns every row as a record.
type sqlExtractor struct {
	c     *builders.Client
	query string
}

// newSQLExtractor resolves the query of a sql source: the explicit query,
// or a full select from the data key table quoted with quote.
func newSQLExtractor(c *builders.Client, params *core.SourceParams, quote func(string) string) (*sqlExtractor, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		if params.DataKey == "" {
			return nil, errNoQuery
		}
		query = fmt.Sprintf("SELECT * FROM %s", quote(params.DataKey))
	}

	return &sqlExtractor{
		c:     c,
		query: query,
	}, nil
}

func (e *sqlExtractor) Extract(ctx context.Context) ([]core.Record, error) {
	records, err := e.c.QueryRecords(ctx, e.query)
	if err != nil {
		return nil, fmt.Errorf("c.QueryRecords: %w", err)
	}
	return records, nil
}

func (e *sqlExtractor) Close() {
	e.c.Close()
}

// quoteDouble quotes every dotted part of an identifier with double quotes.
func quoteDouble(ident string) string {
	return quoteParts(ident, `"`, `""`)
}

// quoteBacktick quotes every dotted part of an identifier with backticks.
func quoteBacktick(ident string) string {
	return quoteParts(ident, "`", "``")
}

func quoteParts(ident, q, escaped string) string {
	return quotePartsWith(ident, q, q, escaped)
}

func quotePartsWith(ident, open, closing, escaped string) string {
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = open + strings.ReplaceAll(p, closing, escaped) + closing
	}
	return strings.Join(parts, ".")
}

// jsonProcessor decodes json column values into ordered values.
// Values that don't decode are kept as text.
func jsonProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	val, err := decodeJSON(bytes.NewReader(b))
	if err != nil {
		return string(b)
	}
	return val
}
