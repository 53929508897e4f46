package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type (
	// Adapter builds a source variant from its parameters.
	Adapter interface {
		Connect(params *SourceParams) (Extractor, error)
	}

	// Extractor is the one capability every source variant exposes.
	// A nil slice with a nil error means the variant produced no record list.
	Extractor interface {
		Extract(ctx context.Context) ([]Record, error)
	}

	// Closer is an optional interface for extractors holding connections.
	Closer interface {
		Close()
	}
)

type SourceID string

// Source is an identifiable producer of records.
type Source struct {
	params           *SourceParams
	unexpandedParams *SourceParams

	extractor Extractor
}

func NewSource(params *SourceParams, adapter Adapter) (*Source, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = SourceID(uuid.New().String())
	}

	extractor, err := adapter.Connect(expanded)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	s := &Source{
		params:           expanded,
		unexpandedParams: params,

		extractor: extractor,
	}

	return s, nil
}

func (s *Source) GetID() SourceID {
	return s.params.ID
}

func (s *Source) GetName() string {
	return s.params.Name
}

// GetParams returns the parameters as configured, before template expansion.
func (s *Source) GetParams() *SourceParams {
	return s.unexpandedParams
}

// Extract invokes the variant's extraction capability once.
func (s *Source) Extract(ctx context.Context) ([]Record, error) {
	return s.extractor.Extract(ctx)
}

func (s *Source) String() string {
	if s.params.Name != "" {
		return fmt.Sprintf("%s (%s)", s.params.Name, s.params.Type)
	}
	return fmt.Sprintf("%s (%s)", s.params.ID, s.params.Type)
}

func (s *Source) Close() {
	closer, ok := s.extractor.(Closer)
	if !ok {
		return
	}
	closer.Close()
}
