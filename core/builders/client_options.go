package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts scanned values of a database type name.
// Type names are matched case insensitively and the first registration wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return WithTypeProcessors(fn, typ)
}

// WithTypeProcessors registers one processor for several database type names,
// e.g. json and jsonb.
func WithTypeProcessors(fn func(any) any, types ...string) ClientOption {
	return func(cc *clientConfig) {
		for _, typ := range types {
			t := strings.ToLower(typ)
			if _, ok := cc.typeProcessors[t]; ok {
				continue
			}
			cc.typeProcessors[t] = fn
		}
	}
}
