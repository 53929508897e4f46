package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/reportgen/reportgen/models"
)

// Extraction is the retained output of a single source extraction.
type Extraction struct {
	Source  *Source
	Records []Record
}

// Consolidator merges records from many sources into one dataset.
type Consolidator struct {
	log models.Logger
}

type ConsolidatorOption func(*Consolidator)

func ConsolidatorWithLogger(logger models.Logger) ConsolidatorOption {
	return func(c *Consolidator) {
		c.log = logger
	}
}

func NewConsolidator(opts ...ConsolidatorOption) *Consolidator {
	c := &Consolidator{
		log: models.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Consolidate is a shorthand for NewConsolidator(opts...).Consolidate.
func Consolidate(ctx context.Context, sources []*Source, opts ...ConsolidatorOption) (*Dataset, error) {
	return NewConsolidator(opts...).Consolidate(ctx, sources)
}

// Consolidate extracts every source once, in order, and builds the dataset.
// The first failing source aborts the whole run and no partial dataset is returned.
func (c *Consolidator) Consolidate(ctx context.Context, sources []*Source) (*Dataset, error) {
	extractions, err := c.Extract(ctx, sources)
	if err != nil {
		return nil, err
	}

	records := MergeRecords(extractions)

	provenance := newProvenanceMap()
	if len(records) > 0 {
		provenance = BuildProvenance(extractions)
	}

	return &Dataset{
		records:    records,
		provenance: provenance,
		statistics: ComputeStatistics(records),
	}, nil
}

// Extract invokes each source's extraction capability exactly once and
// retains the results. Empty results, missing record lists and invalid
// response shapes contribute nothing and are only logged.
func (c *Consolidator) Extract(ctx context.Context, sources []*Source) ([]Extraction, error) {
	extractions := make([]Extraction, 0, len(sources))

	for _, source := range sources {
		records, err := source.Extract(ctx)
		if err != nil {
			if errors.Is(err, ErrInvalidResponseShape) {
				c.log.Warnf("source %s: %s, continuing with no records", source, err)
				extractions = append(extractions, Extraction{Source: source, Records: []Record{}})
				continue
			}
			return nil, &SourceError{
				ID:   source.GetID(),
				Name: source.GetName(),
				Err:  fmt.Errorf("source.Extract: %w", err),
			}
		}

		switch {
		case records == nil:
			c.log.Warnf("source %s did not return a record list", source)
			records = []Record{}
		case len(records) == 0:
			c.log.Warnf("source %s returned an empty record list", source)
		default:
			c.log.Debugf("source %s returned %d records", source, len(records))
		}

		extractions = append(extractions, Extraction{Source: source, Records: records})
	}

	return extractions, nil
}

// MergeRecords concatenates the records of all extractions in source order.
func MergeRecords(extractions []Extraction) []Record {
	total := 0
	for _, e := range extractions {
		total += len(e.Records)
	}

	merged := make([]Record, 0, total)
	for _, e := range extractions {
		merged = append(merged, e.Records...)
	}
	return merged
}

// BuildProvenance maps every column to the sources whose records contain it.
// A key holding an explicit null still counts as contributed.
func BuildProvenance(extractions []Extraction) *ProvenanceMap {
	provenance := newProvenanceMap()

	for _, e := range extractions {
		for _, r := range e.Records {
			for _, col := range r.columns {
				provenance.add(col, e.Source)
			}
		}
	}

	return provenance
}
