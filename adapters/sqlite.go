//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3")
}

var _ core.Adapter = (*SQLite)(nil)

type SQLite struct{}

func (s *SQLite) Connect(params *core.SourceParams) (core.Extractor, error) {
	db, err := sql.Open("sqlite", params.Location)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlite database: %v", err)
	}

	e, err := newSQLExtractor(builders.NewClient(db), params, quoteDouble)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}
