package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/mock"
)

type columnsFormatter struct{}

func (columnsFormatter) Format(dataset *core.Dataset, opts *core.FormatterOptions) ([]byte, error) {
	var out []byte
	for _, col := range opts.ColumnsOrDefault(dataset.Columns()) {
		out = append(out, col...)
		out = append(out, ';')
	}
	return out, nil
}

type failingFormatter struct{}

func (failingFormatter) Format(*core.Dataset, *core.FormatterOptions) ([]byte, error) {
	return nil, errors.New("cannot format")
}

func TestDataset_Format(t *testing.T) {
	r := require.New(t)

	src, _ := mock.NewSource("s", []core.Record{core.NewRecord("b", 1, "a", 2)})
	dataset, err := core.Consolidate(context.Background(), []*core.Source{src})
	r.NoError(err)

	out, err := dataset.Format(columnsFormatter{}, nil)
	r.NoError(err)
	r.Equal("b;a;", string(out))

	out, err = dataset.Format(columnsFormatter{}, &core.FormatterOptions{Columns: []string{"a"}})
	r.NoError(err)
	r.Equal("a;", string(out))

	_, err = dataset.Format(failingFormatter{}, nil)
	r.Error(err)
}

func TestDataset_ReadOnly(t *testing.T) {
	r := require.New(t)

	src, _ := mock.NewSource("s", mock.NewRecords(0, 3))
	dataset, err := core.Consolidate(context.Background(), []*core.Source{src})
	r.NoError(err)

	records := dataset.Records()
	records[0] = core.NewRecord("replaced", true)

	r.Equal(0, dataset.Records()[0].Value("id"))
	r.Len(dataset.Project([]string{"name"}), 3)
}

func TestNewDataset(t *testing.T) {
	r := require.New(t)

	dataset := core.NewDataset([]core.Record{core.NewRecord("v", "5")}, nil)
	r.Equal(1, dataset.Len())
	r.Equal(0, dataset.Provenance().Len())

	cs, ok := dataset.Statistics().Get("v")
	r.True(ok)
	r.Equal(5.0, *cs.Min)
}

func TestDrain(t *testing.T) {
	r := require.New(t)

	records := mock.NewRecords(0, 5)
	stream := mock.NewRecordStream(records, mock.StreamWithNextSleep(time.Millisecond))

	actual, err := core.Drain(stream)
	r.NoError(err)
	r.Equal(records, actual)
	r.False(stream.HasNext())
	r.Equal(core.Header{"id", "name"}, stream.Header())
}

func TestDataset_MarshalJSON_ControlCharsAndNonFinite(t *testing.T) {
	r := require.New(t)

	src, _ := mock.NewSource("s\x7f", []core.Record{
		core.NewRecord("x\x7f", 1, "ratio", math.NaN()),
		core.NewRecord("x\x7f", 3, "ratio", math.Inf(1), "tags", []any{math.Inf(-1), "a"}),
	})

	dataset, err := core.Consolidate(context.Background(), []*core.Source{src})
	r.NoError(err)

	out, err := json.Marshal(dataset)
	r.NoError(err)
	r.True(json.Valid(out), string(out))

	var decoded struct {
		Records    []map[string]any      `json:"records"`
		Provenance map[string][]string   `json:"provenance"`
		Statistics map[string]struct {
			Min        *float64 `json:"min"`
			Max        *float64 `json:"max"`
			BlankCount int      `json:"blank_count"`
		} `json:"statistics"`
	}
	r.NoError(json.Unmarshal(out, &decoded))

	r.Len(decoded.Records, 2)
	r.Equal(float64(1), decoded.Records[0]["x\x7f"])
	r.Nil(decoded.Records[0]["ratio"])
	r.Nil(decoded.Records[1]["ratio"])
	r.Equal([]any{nil, "a"}, decoded.Records[1]["tags"])

	r.Equal([]string{"s\x7f"}, decoded.Provenance["x\x7f"])

	stats := decoded.Statistics["x\x7f"]
	r.NotNil(stats.Min)
	r.Equal(1.0, *stats.Min)
	r.Equal(3.0, *stats.Max)
}
