package mock

import (
	"context"
	"fmt"

	"github.com/reportgen/reportgen/core"
)

var _ core.Extractor = (*extractor)(nil)

type extractor struct {
	records []core.Record
	config  *adapterConfig
}

func (e *extractor) Extract(ctx context.Context) ([]core.Record, error) {
	e.config.calls++

	if e.config.sideEffect != nil {
		err := e.config.sideEffect(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	if e.config.nilResult {
		return nil, nil
	}

	out := make([]core.Record, len(e.records))
	copy(out, e.records)
	return out, nil
}

func (e *extractor) Close() {
	e.config.closed = true
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter is a mocked source variant that returns the provided records.
type Adapter struct {
	records []core.Record
	config  *adapterConfig
}

func NewAdapter(records []core.Record, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		records: records,
		config:  config,
	}
}

func (a *Adapter) Connect(_ *core.SourceParams) (core.Extractor, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}

	return &extractor{
		records: a.records,
		config:  a.config,
	}, nil
}

// Calls returns how many times the extraction capability was invoked.
func (a *Adapter) Calls() int {
	return a.config.calls
}

// Closed reports whether the extractor was closed.
func (a *Adapter) Closed() bool {
	return a.config.closed
}

// NewSource returns a source with the given id backed by a mocked adapter.
func NewSource(id string, records []core.Record, opts ...AdapterOption) (*core.Source, *Adapter) {
	adapter := NewAdapter(records, opts...)

	source, err := core.NewSource(&core.SourceParams{
		ID:   core.SourceID(id),
		Name: id,
		Type: "mock",
	}, adapter)
	if err != nil {
		// mocked adapters only fail to connect when told to
		panic(err)
	}

	return source, adapter
}

// NewRecords returns a slice of records in form of:
//
//	{ "id": <index>(int), "name": "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRecords(from, to int) []core.Record {
	var records []core.Record

	for i := from; i < to; i++ {
		records = append(records, core.NewRecord("id", i, "name", fmt.Sprintf("row_%d", i)))
	}
	return records
}
