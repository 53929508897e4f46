package mock

import "context"

type adapterConfig struct {
	sideEffect func(context.Context) error
	connectErr error
	nilResult  bool

	calls  int
	closed bool
}

type AdapterOption func(*adapterConfig)

// AdapterWithExtractSideEffect runs fn on every extraction; a returned error fails it.
func AdapterWithExtractSideEffect(fn func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		if c.sideEffect != nil {
			panic("side effect already registered")
		}
		c.sideEffect = fn
	}
}

// AdapterWithExtractError makes every extraction fail with err.
func AdapterWithExtractError(err error) AdapterOption {
	return AdapterWithExtractSideEffect(func(context.Context) error {
		return err
	})
}

// AdapterWithConnectError makes Connect fail.
func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

// AdapterWithNilResult makes extraction return no record list at all.
func AdapterWithNilResult() AdapterOption {
	return func(c *adapterConfig) {
		c.nilResult = true
	}
}
