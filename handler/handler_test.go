package handler_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/adapters"
	"github.com/reportgen/reportgen/config"
	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/format"
	"github.com/reportgen/reportgen/core/mock"
	"github.com/reportgen/reportgen/handler"
	"github.com/reportgen/reportgen/logger"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHandler_Run(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter([]core.Record{
		core.NewRecord("id", 3, "value", 30, "product", "B"),
	})
	r.NoError(new(adapters.Mux).AddAdapter("handler-run-mock", adapter))

	csvPath := writeCSV(t, "id,value\n1,10\n2,\n")
	outDir := t.TempDir()

	cfg, err := config.Parse([]byte(`
sources:
  - {name: local, type: local, location: ` + csvPath + `}
  - {name: skipped, type: carrier-pigeon, location: roof}
  - {name: mocked, type: handler-run-mock, location: memory}
outputs:
  - {format: csv, path: ` + filepath.Join(outDir, "report.csv") + `}
  - {format: json}
columns: [id, value]
`))
	r.NoError(err)

	var stdout bytes.Buffer
	h := handler.New(logger.Discard(), handler.WithStdout(&stdout))

	dataset, err := h.Run(context.Background(), cfg)
	r.NoError(err)
	h.Close()

	r.Len(h.GetSources(), 2)
	r.Equal(1, adapter.Calls())
	r.True(adapter.Closed())

	r.Equal(3, dataset.Len())
	r.Equal([]core.SourceID{"local", "mocked"}, dataset.Provenance().SourceIDs("value"))
	r.Equal([]core.SourceID{"mocked"}, dataset.Provenance().SourceIDs("product"))

	value, ok := dataset.Statistics().Get("value")
	r.True(ok)
	// an empty csv cell is text, not null
	r.Equal(0, value.BlankCount)
	r.Equal(10.0, *value.Min)
	r.Equal(30.0, *value.Max)

	report, err := os.ReadFile(filepath.Join(outDir, "report.csv"))
	r.NoError(err)
	r.Equal("id,value\n1,10\n2,\n3,30\n", string(report))

	r.True(strings.HasPrefix(stdout.String(), "{"))
	r.Contains(stdout.String(), `"provenance"`)
}

func TestHandler_LoadSourcesLogsConfiguredLocation(t *testing.T) {
	r := require.New(t)

	r.NoError(new(adapters.Mux).AddAdapter("handler-log-mock", mock.NewAdapter(nil)))
	t.Setenv("REPORTGEN_HANDLER_LOCATION", "redis://:hunter2@cache:6379")

	cfg, err := config.Parse([]byte(`
sources:
  - {name: cache, type: handler-log-mock, location: '{{ env "REPORTGEN_HANDLER_LOCATION" }}'}
`))
	r.NoError(err)

	var logs bytes.Buffer
	h := handler.New(logger.New(&logs, logger.LevelDebug))
	defer h.Close()

	r.NoError(h.LoadSources(cfg))
	r.Len(h.GetSources(), 1)

	r.Contains(logs.String(), `from "{{ env \"REPORTGEN_HANDLER_LOCATION\" }}"`)
	r.NotContains(logs.String(), "hunter2")
}

func TestHandler_FailingSourceAborts(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Parse([]byte(`
sources:
  - {name: missing, type: local, location: ` + filepath.Join(t.TempDir(), "nope.csv") + `}
outputs:
  - {format: text}
`))
	r.NoError(err)

	var stdout bytes.Buffer
	h := handler.New(logger.Discard(), handler.WithStdout(&stdout))
	defer h.Close()

	_, err = h.Run(context.Background(), cfg)
	r.ErrorIs(err, core.ErrNotFound)

	var sourceErr *core.SourceError
	r.ErrorAs(err, &sourceErr)
	r.Equal("missing", sourceErr.Name)
	r.Empty(stdout.String())
}

func TestHandler_RenderErrors(t *testing.T) {
	r := require.New(t)

	h := handler.New(logger.Discard(), handler.WithStdout(&bytes.Buffer{}))
	dataset, err := h.Consolidate(context.Background())
	r.NoError(err)
	r.True(dataset.IsEmpty())

	// csv refuses an empty dataset
	err = h.Render(context.Background(), dataset, []config.OutputConfig{{Format: "csv", Path: "-"}}, nil)
	r.ErrorIs(err, format.ErrNoRecords)

	err = h.Render(context.Background(), dataset, []config.OutputConfig{{Format: "pdf", Path: "-"}}, nil)
	r.ErrorIs(err, handler.ErrUnknownFormat)
}

func TestHandler_CreateSourceDuplicateID(t *testing.T) {
	r := require.New(t)

	h := handler.New(logger.Discard())
	defer h.Close()

	path := writeCSV(t, "a\n1\n")
	_, err := h.CreateSource(&core.SourceParams{ID: "dup", Type: "csv", Location: path})
	r.NoError(err)
	_, err = h.CreateSource(&core.SourceParams{ID: "dup", Type: "csv", Location: path})
	r.Error(err)
	r.Len(h.GetSources(), 1)
}

func TestFormatter(t *testing.T) {
	r := require.New(t)

	for _, name := range []string{"text", "html", "csv", "json", "markdown"} {
		f, err := handler.Formatter(name)
		r.NoError(err)
		r.NotNil(f)
	}
}
