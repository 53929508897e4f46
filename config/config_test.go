package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/config"
	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/logger"
)

func TestParse_YAML(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Parse([]byte(`
title: Weekly
sources:
  - name: shop
    type: Web
    location: https://example.com/api
    data_key: products
    credentials:
      token: "{{ env \"SHOP_TOKEN\" }}"
  - id: archive
    type: local
    location: data/sales.csv
outputs:
  - format: HTML
    path: report.html
  - format: csv
columns: [id, value]
log:
  level: debug
`))
	r.NoError(err)

	r.Equal("Weekly", cfg.Title)
	r.Len(cfg.Sources, 2)
	r.Equal("web", cfg.Sources[0].Type)
	r.Equal([]config.OutputConfig{
		{Format: config.FormatHTML, Path: "report.html"},
		{Format: config.FormatCSV, Path: config.Stdout},
	}, cfg.Outputs)
	r.Equal("debug", cfg.Log.Level)

	params := cfg.Sources[0].Params()
	r.Equal(core.SourceID("shop"), params.ID)
	r.Equal("products", params.DataKey)
	r.Equal(`{{ env "SHOP_TOKEN" }}`, params.Credentials["token"])

	r.Equal(core.SourceID("archive"), cfg.Sources[1].Params().ID)

	opts := cfg.FormatterOptions()
	r.Equal([]string{"id", "value"}, opts.Columns)
	r.Equal("Weekly", opts.Title)
}

func TestParse_JSON(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Parse([]byte(`{
		"sources": [
			{"type": "web", "location": "https://example.com", "credentials": {"api_key": 123}},
			{"type": "local", "location": "sales.csv"}
		]
	}`))
	r.NoError(err)
	r.Len(cfg.Sources, 2)
	r.Equal("123", cfg.Sources[0].Credentials["api_key"])

	// defaults mirror printing both reports
	r.Equal([]config.OutputConfig{
		{Format: config.FormatHTML, Path: config.Stdout},
		{Format: config.FormatText, Path: config.Stdout},
	}, cfg.Outputs)
}

func TestParse_Invalid(t *testing.T) {
	testCases := map[string]string{
		"malformed":      `sources: [`,
		"missing type":   `sources: [{location: x}]`,
		"duplicate id":   `sources: [{name: a, type: local}, {id: a, type: web}]`,
		"unknown format": `outputs: [{format: pdf}]`,
	}

	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestSourceParams_SkipsUnknownTypes(t *testing.T) {
	r := require.New(t)

	cfg, err := config.Parse([]byte(`
sources:
  - {type: local, location: a.csv}
  - {type: ftp, location: ftp://x}
  - {type: web, location: https://y}
`))
	r.NoError(err)

	supported := func(typ string) bool { return typ == "local" || typ == "web" }
	params := cfg.SourceParams(supported, logger.Discard())
	r.Len(params, 2)
	r.Equal("a.csv", params[0].Location)
	r.Equal("https://y", params[1].Location)
}

func TestLoadAndFind(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	r.NoError(os.WriteFile(path, []byte("sources: []\n"), 0o644))

	found, err := config.Find(path)
	r.NoError(err)
	r.Equal(path, found)

	cfg, err := config.Load(found)
	r.NoError(err)
	r.Empty(cfg.Sources)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	r.Error(err)

	wd, err := os.Getwd()
	r.NoError(err)
	r.NoError(os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = config.Find("")
	r.ErrorIs(err, config.ErrNoConfig)

	r.NoError(os.WriteFile("config.json", []byte(`{"sources": []}`), 0o644))
	found, err = config.Find("")
	r.NoError(err)
	r.Equal("config.json", found)
}
