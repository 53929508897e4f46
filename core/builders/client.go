package builders

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reportgen/reportgen/core"
)

// default sql client used by the database source variants
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:           conn,
		typeProcessors: c.typeProcessors,
	}, nil
}

// QueryRecords runs a query on a fresh connection and drains it into records.
func (c *Client) QueryRecords(ctx context.Context, query string) ([]core.Record, error) {
	conn, err := c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stream, err := conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return core.Drain(stream)
}

func (c *Client) Close() {
	c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn           *sql.Conn
	typeProcessors map[string]func(any) any
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a query on a connection and returns a record stream.
// SQL NULL becomes a nil value.
func (c *Conn) Query(ctx context.Context, query string) (*RecordStream, error) {
	dbRows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	// advance eagerly so hasNext can be called repeatedly
	var (
		advanced    bool
		has         bool
		rowsErr     error
		errReported bool
	)
	hasNextFunc := func() bool {
		if !advanced {
			has = dbRows.Next()
			advanced = true
			if !has {
				rowsErr = dbRows.Err()
			}
		}
		return has || (rowsErr != nil && !errReported)
	}

	nextFunc := func() (core.Row, error) {
		if !hasNextFunc() {
			return nil, errNoNextRecord
		}
		if !has {
			errReported = true
			return nil, rowsErr
		}
		advanced = false

		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(dbCols))
		for i := range dbCols {
			proc := c.getTypeProcessor(dbCols[i].DatabaseTypeName())
			row[i] = proc(columns[i])
		}

		return row, nil
	}

	rows := NewRecordStreamBuilder().
		WithHeader(header).
		WithNextRowFunc(nextFunc, hasNextFunc).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
