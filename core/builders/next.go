package builders

import (
	"errors"

	"github.com/reportgen/reportgen/core"
)

var errNoNextRecord = errors.New("no next record")

// NextSlice creates next and hasNext functions from provided values.
// convert turns a single value from the slice into a record.
func NextSlice[T any](values []T, convert func(T) (core.Record, error)) (func() (core.Record, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	// iterator functions
	next := func() (core.Record, error) {
		if !hasNext() {
			return core.Record{}, errNoNextRecord
		}

		rec, err := convert(values[index])
		index++
		return rec, err
	}

	return next, hasNext
}

// NextYield creates next and hasNext functions from a producer function.
// fn runs in its own goroutine and hands records over through yield.
// An error returned by fn is reported by the final call to next.
func NextYield(fn func(yield func(core.Record)) error) (func() (core.Record, error), func() bool) {
	ch := make(chan core.Record, 10)
	var fnErr error

	go func() {
		fnErr = fn(func(rec core.Record) {
			ch <- rec
		})
		close(ch)
	}()

	var (
		buffered    core.Record
		hasBuffered bool
		closed      bool
		errReported bool
	)

	// hasNext blocks until a record is available or the producer is done
	hasNext := func() bool {
		if hasBuffered {
			return true
		}
		if !closed {
			rec, ok := <-ch
			if ok {
				buffered, hasBuffered = rec, true
				return true
			}
			closed = true
		}
		return fnErr != nil && !errReported
	}

	next := func() (core.Record, error) {
		if !hasNext() {
			return core.Record{}, errNoNextRecord
		}
		if hasBuffered {
			hasBuffered = false
			return buffered, nil
		}
		errReported = true
		return core.Record{}, fnErr
	}

	return next, hasNext
}
