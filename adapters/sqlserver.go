package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	"github.com/google/uuid"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(params *core.SourceParams) (core.Extractor, error) {
	u, err := nurl.Parse(params.Location)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlserver database: %v", err)
	}

	c := builders.NewClient(db,
		builders.WithCustomTypeProcessor("uniqueidentifier", uniqueIdentifierProcessor),
	)

	e, err := newSQLExtractor(c, params, quoteBracket)
	if err != nil {
		c.Close()
		return nil, err
	}
	return e, nil
}

func uniqueIdentifierProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	id, err := uuid.FromBytes(b)
	if err != nil {
		return a
	}

	return id.String()
}

func quoteBracket(ident string) string {
	return quotePartsWith(ident, "[", "]", "]]")
}
