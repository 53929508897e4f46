package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Clickhouse{}, "clickhouse")
}

var _ core.Adapter = (*Clickhouse)(nil)

type Clickhouse struct{}

func (p *Clickhouse) Connect(params *core.SourceParams) (core.Extractor, error) {
	options, err := clickhouse.ParseDSN(params.Location)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db := clickhouse.OpenDB(options)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pinging connection failed with %v", core.ErrNetwork, err)
	}

	c := builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)

	e, err := newSQLExtractor(c, params, quoteBacktick)
	if err != nil {
		c.Close()
		return nil, err
	}
	return e, nil
}
