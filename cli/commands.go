package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/reportgen/reportgen/adapters"
	"github.com/reportgen/reportgen/config"
	"github.com/reportgen/reportgen/handler"
	"github.com/reportgen/reportgen/logger"
)

const (
	CmdRun     = "run"
	CmdStats   = "stats"
	CmdSources = "sources"
	CmdVersion = "version"

	FlagConfig  = "config"
	FlagFormat  = "format"
	FlagOut     = "out"
	FlagVerbose = "verbose"
)

// Version is set at build time.
var Version = "dev"

type options struct {
	configPath string
	formats    []string
	outPath    string
	verbose    bool
}

// NewRootCommand builds the command tree. Output goes to stdout and
// diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "reportgen",
		Short: "Consolidate records from many sources into one report",
		Long: `reportgen reads records from CSV and JSON files, web APIs and databases,
merges them into one dataset, tracks which source contributed which column
and summarizes every column with min, max and blank counts.

QUICK START:
  reportgen run                        # use ./config.yaml or ./config.json
  reportgen run -c sales.yaml -f csv   # render one format to stdout
  reportgen stats                      # print column statistics only`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.configPath, FlagConfig, "c", "", "config file (default: "+strings.Join(config.DefaultPaths, ", ")+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, FlagVerbose, "v", false, "log debug messages")

	runCmd := &cobra.Command{
		Use:   CmdRun,
		Short: "Consolidate all sources and render the configured outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}
	runCmd.Flags().StringSliceVarP(&opts.formats, FlagFormat, "f", nil, "output formats overriding the config (text, html, csv, json, markdown)")
	runCmd.Flags().StringVarP(&opts.outPath, FlagOut, "o", config.Stdout, "output path used with --format")

	statsCmd := &cobra.Command{
		Use:   CmdStats,
		Short: "Print per column statistics of the consolidated dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}

	sourcesCmd := &cobra.Command{
		Use:   CmdSources,
		Short: "List configured sources and supported source types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   CmdVersion,
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reportgen %s\n", Version)
		},
	}

	root.AddCommand(runCmd, statsCmd, sourcesCmd, versionCmd)
	return root
}

// Execute runs the command line against the process arguments.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func loadConfig(opts *options) (*config.Config, error) {
	path, err := config.Find(opts.configPath)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newLogger honors the config log section. Without a log file messages go to stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config, verbose bool) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = logger.LevelDebug
	}

	if cfg.Log.File != "" {
		return logger.NewFile(cfg.Log.File, level)
	}
	return logger.New(cmd.ErrOrStderr(), level), nil
}

func prepare(cmd *cobra.Command, opts *options) (*config.Config, *handler.Handler, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := newLogger(cmd, cfg, opts.verbose)
	if err != nil {
		return nil, nil, nil, err
	}

	h := handler.New(log, handler.WithStdout(cmd.OutOrStdout()))
	cleanup := func() {
		h.Close()
		log.Close()
	}
	return cfg, h, cleanup, nil
}

func runReport(cmd *cobra.Command, opts *options) error {
	cfg, h, cleanup, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(opts.formats) > 0 {
		cfg.Outputs = make([]config.OutputConfig, 0, len(opts.formats))
		for _, f := range opts.formats {
			cfg.Outputs = append(cfg.Outputs, config.OutputConfig{
				Format: strings.ToLower(strings.TrimSpace(f)),
				Path:   opts.outPath,
			})
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	_, err = h.Run(cmd.Context(), cfg)
	return err
}

func runStats(cmd *cobra.Command, opts *options) error {
	cfg, h, cleanup, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := h.LoadSources(cfg); err != nil {
		return err
	}

	dataset, err := h.Consolidate(cmd.Context())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(dataset.Statistics(), "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runSources(cmd *cobra.Command, opts *options) error {
	mux := new(adapters.Mux)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Location", "Supported"})

	cfg, err := loadConfig(opts)
	if err == nil {
		for _, s := range cfg.Sources {
			params := s.Params()
			t.AppendRow(table.Row{params.ID, params.Name, params.Type, params.Location, mux.Supports(params.Type)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	} else if !isNoConfig(err) {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "supported types: %s\n", strings.Join(mux.Types(), ", "))
	return nil
}

func isNoConfig(err error) bool {
	return errors.Is(err, config.ErrNoConfig)
}
