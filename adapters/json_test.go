package adapters

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/core"
)

func TestDecodeJSON(t *testing.T) {
	r := require.New(t)

	doc, err := decodeJSON(strings.NewReader(`{"z": 1, "a": {"y": null, "b": [true, "s"]}}`))
	r.NoError(err)

	rec, ok := doc.(core.Record)
	r.True(ok)
	r.Equal([]string{"z", "a"}, rec.Columns())
	r.Equal(json.Number("1"), rec.Value("z"))

	nested, ok := rec.Value("a").(core.Record)
	r.True(ok)
	r.Equal([]string{"y", "b"}, nested.Columns())
	r.Nil(nested.Value("y"))
	r.Equal([]any{true, "s"}, nested.Value("b"))

	_, err = decodeJSON(strings.NewReader(`{"a": `))
	r.ErrorIs(err, core.ErrParse)

	_, err = decodeJSON(strings.NewReader(`[] []`))
	r.ErrorIs(err, core.ErrParse)
}

func TestRecordList(t *testing.T) {
	type testCase struct {
		name        string
		doc         string
		dataKey     string
		expectedLen int
		expectedErr error
	}

	testCases := []testCase{
		{name: "top level list", doc: `[{"a": 1}, {"b": 2}]`, expectedLen: 2},
		{name: "list under key", doc: `{"products": [{"a": 1}]}`, dataKey: "products", expectedLen: 1},
		{name: "empty list", doc: `{"products": []}`, dataKey: "products", expectedLen: 0},
		{name: "missing key", doc: `{"other": []}`, dataKey: "products", expectedErr: core.ErrInvalidResponseShape},
		{name: "value is not a list", doc: `{"products": "x"}`, dataKey: "products", expectedErr: core.ErrInvalidResponseShape},
		{name: "document is not an object", doc: `[1]`, dataKey: "products", expectedErr: core.ErrInvalidResponseShape},
		{name: "items are not objects", doc: `[1, 2]`, expectedErr: core.ErrInvalidResponseShape},
		{name: "top level object without key", doc: `{"a": 1}`, expectedErr: core.ErrInvalidResponseShape},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			doc, err := decodeJSON(strings.NewReader(tc.doc))
			r.NoError(err)

			records, err := recordList(doc, tc.dataKey)
			if tc.expectedErr != nil {
				r.ErrorIs(err, tc.expectedErr)
				return
			}
			r.NoError(err)
			r.NotNil(records)
			r.Len(records, tc.expectedLen)
		})
	}
}

func TestJSON_Extract(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, "data.json", []byte(`{"sales": [{"id": 1, "value": 10.5}, {"id": 2, "value": null}]}`))

	e, err := new(JSON).Connect(&core.SourceParams{Type: "json", Location: path, DataKey: "sales"})
	r.NoError(err)

	records, err := e.Extract(context.Background())
	r.NoError(err)
	r.Equal([]core.Record{
		core.NewRecord("id", json.Number("1"), "value", json.Number("10.5")),
		core.NewRecord("id", json.Number("2"), "value", nil),
	}, records)

	e, err = new(JSON).Connect(&core.SourceParams{Type: "json", Location: path + ".missing"})
	r.NoError(err)
	_, err = e.Extract(context.Background())
	r.ErrorIs(err, core.ErrNotFound)
}
