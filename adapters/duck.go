//go:build cgo && ((darwin && (amd64 || arm64)) || (linux && (amd64 || arm64 || riscv64)))

package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Duck{}, "duck", "duckdb")
}

var _ core.Adapter = (*Duck)(nil)

type Duck struct{}

func (d *Duck) Connect(params *core.SourceParams) (core.Extractor, error) {
	db, err := sql.Open("duckdb", params.Location)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to duckdb database: %v", err)
	}

	e, err := newSQLExtractor(builders.NewClient(db), params, quoteDouble)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}
