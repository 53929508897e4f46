package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/sijms/go-ora/v2"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Oracle{}, "oracle")
}

var _ core.Adapter = (*Oracle)(nil)

type Oracle struct{}

func (o *Oracle) Connect(params *core.SourceParams) (core.Extractor, error) {
	db, err := sql.Open("oracle", params.Location)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to oracle database: %v", err)
	}

	e, err := newSQLExtractor(builders.NewClient(db), params, quoteDouble)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}
