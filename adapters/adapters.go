package adapters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/reportgen/reportgen/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no source variant registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for a source variant
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return adapter, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Types lists every registered type alias in sorted order.
func (*Mux) Types() []string {
	types := make([]string, 0, len(registeredAdapters))
	for typ := range registeredAdapters {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Supports reports whether a type alias has a registered adapter.
func (*Mux) Supports(typ string) bool {
	_, ok := registeredAdapters[typ]
	return ok
}

// NewSource is a wrapper around core.NewSource that uses the internal mux for
// adapter registration.
func NewSource(params *core.SourceParams) (*core.Source, error) {
	adapter, err := new(Mux).GetAdapter(params.Expand().Type)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	s, err := core.NewSource(params, adapter)
	if err != nil {
		return nil, fmt.Errorf("core.NewSource: %w", err)
	}

	return s, nil
}
