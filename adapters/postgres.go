package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	_ "github.com/lib/pq"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

func (p *Postgres) Connect(params *core.SourceParams) (core.Extractor, error) {
	u, err := nurl.Parse(params.Location)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	c := builders.NewClient(db,
		builders.WithTypeProcessors(jsonProcessor, "json", "jsonb"),
	)

	e, err := newSQLExtractor(c, params, quoteDouble)
	if err != nil {
		c.Close()
		return nil, err
	}
	return e, nil
}
