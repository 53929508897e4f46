package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/reportgen/reportgen/adapters"
	"github.com/reportgen/reportgen/config"
	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/format"
	"github.com/reportgen/reportgen/models"
	"github.com/reportgen/reportgen/output"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Handler owns the sources of one report run and turns them into rendered outputs.
type Handler struct {
	log    models.Logger
	mux    *adapters.Mux
	stdout io.Writer

	lookupSource map[core.SourceID]*core.Source
	sourceOrder  []core.SourceID
}

type Option func(*Handler)

// WithStdout redirects outputs with the "-" path.
func WithStdout(w io.Writer) Option {
	return func(h *Handler) {
		h.stdout = w
	}
}

func New(logger models.Logger, opts ...Option) *Handler {
	h := &Handler{
		log:    logger,
		mux:    new(adapters.Mux),
		stdout: os.Stdout,

		lookupSource: make(map[core.SourceID]*core.Source),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Close() {
	for _, id := range h.sourceOrder {
		h.lookupSource[id].Close()
	}
}

func (h *Handler) CreateSource(params *core.SourceParams) (core.SourceID, error) {
	s, err := adapters.NewSource(params)
	if err != nil {
		return "", fmt.Errorf("adapters.NewSource: %w", err)
	}

	if _, ok := h.lookupSource[s.GetID()]; ok {
		s.Close()
		return "", fmt.Errorf("source with id %q already exists", s.GetID())
	}

	h.lookupSource[s.GetID()] = s
	h.sourceOrder = append(h.sourceOrder, s.GetID())

	return s.GetID(), nil
}

// LoadSources creates every configured source whose type is supported.
func (h *Handler) LoadSources(cfg *config.Config) error {
	for _, params := range cfg.SourceParams(h.mux.Supports, h.log) {
		id, err := h.CreateSource(params)
		if err != nil {
			return fmt.Errorf("source %q: %w", params.Location, err)
		}
		src := h.lookupSource[id]
		h.log.Debugf("created source %s from %q", src, src.GetParams().Location)
	}
	return nil
}

// GetSources returns the sources in the order they were created.
func (h *Handler) GetSources() []*core.Source {
	sources := make([]*core.Source, 0, len(h.sourceOrder))
	for _, id := range h.sourceOrder {
		sources = append(sources, h.lookupSource[id])
	}
	return sources
}

func (h *Handler) Consolidate(ctx context.Context) (*core.Dataset, error) {
	dataset, err := core.NewConsolidator(core.ConsolidatorWithLogger(h.log)).Consolidate(ctx, h.GetSources())
	if err != nil {
		return nil, err
	}

	h.log.Infof("consolidated %d records from %d sources", dataset.Len(), len(h.sourceOrder))
	return dataset, nil
}

// Render formats the dataset for every output concurrently, then writes
// the outputs in their configured order.
func (h *Handler) Render(ctx context.Context, dataset *core.Dataset, outputs []config.OutputConfig, opts *core.FormatterOptions) error {
	rendered := make([][]byte, len(outputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, out := range outputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			formatter, err := Formatter(out.Format)
			if err != nil {
				return err
			}

			data, err := dataset.Format(formatter, opts)
			if err != nil {
				return fmt.Errorf("output %q: %w", out.Format, err)
			}
			rendered[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, out := range outputs {
		w := h.writer(out.Path)
		if err := w.Write(rendered[i]); err != nil {
			return fmt.Errorf("writing %s output to %s: %w", out.Format, w.Name(), err)
		}
	}

	return nil
}

// Run executes a whole report: load sources, consolidate and render.
func (h *Handler) Run(ctx context.Context, cfg *config.Config) (*core.Dataset, error) {
	if err := h.LoadSources(cfg); err != nil {
		return nil, err
	}

	dataset, err := h.Consolidate(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.Render(ctx, dataset, cfg.Outputs, cfg.FormatterOptions()); err != nil {
		return nil, err
	}

	return dataset, nil
}

func (h *Handler) writer(path string) output.Writer {
	if path == "" || path == config.Stdout {
		return output.NewStream("stdout", h.stdout)
	}
	return output.NewFile(path, h.log)
}

// Formatter maps an output format name to its formatter.
func Formatter(name string) (core.Formatter, error) {
	switch name {
	case config.FormatText:
		return format.NewText(), nil
	case config.FormatHTML:
		return format.NewHTML(), nil
	case config.FormatCSV:
		return format.NewCSV(), nil
	case config.FormatJSON:
		return format.NewJSON(), nil
	case config.FormatMarkdown:
		return format.NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
