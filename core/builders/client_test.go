package builders_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// setupTestClient helper function to setup a client over a mocked database
func setupTestClient(t *testing.T, opts ...builders.ClientOption) (*builders.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return builders.NewClient(db, opts...), mock
}

func TestClient_QueryRecords(t *testing.T) {
	tests := []struct {
		name    string
		give    string
		rows    *sqlmock.Rows
		want    []core.Record
		wantErr bool
	}{
		{
			name: "should convert rows to records",
			give: "SELECT id, value, product FROM sales",
			rows: sqlmock.NewRows([]string{"id", "value", "product"}).
				AddRow(int64(1), 10.5, []byte("A")).
				AddRow(int64(2), nil, "B"),
			want: []core.Record{
				core.NewRecord("id", int64(1), "value", 10.5, "product", "A"),
				core.NewRecord("id", int64(2), "value", nil, "product", "B"),
			},
		},
		{
			name: "should return empty slice for no rows",
			give: "SELECT id FROM empty",
			rows: sqlmock.NewRows([]string{"id"}),
			want: []core.Record{},
		},
		{
			name:    "should fail on query error",
			give:    "SELECT broken",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mock := setupTestClient(t)

			if tt.wantErr {
				mock.ExpectQuery(tt.give).WillReturnError(sql.ErrConnDone)
			} else {
				mock.ExpectQuery(tt.give).WillReturnRows(tt.rows)
			}

			got, err := client.QueryRecords(context.Background(), tt.give)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClient_QueryRecords_RowError(t *testing.T) {
	r := require.New(t)

	client, mock := setupTestClient(t)

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow(1).
		AddRow(2).
		RowError(1, sql.ErrTxDone)
	mock.ExpectQuery("SELECT id FROM t").WillReturnRows(rows)

	_, err := client.QueryRecords(context.Background(), "SELECT id FROM t")
	r.ErrorIs(err, sql.ErrTxDone)
}
