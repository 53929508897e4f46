package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Connect(params *core.SourceParams) (core.Extractor, error) {
	db, err := sql.Open("mysql", params.Location)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %v", err)
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
