package mock

import (
	"time"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

type streamConfig struct {
	nextSleep time.Duration
	header    core.Header
}

type StreamOption func(*streamConfig)

func StreamWithNextSleep(s time.Duration) StreamOption {
	return func(c *streamConfig) {
		c.nextSleep = s
	}
}

func StreamWithHeader(header core.Header) StreamOption {
	return func(c *streamConfig) {
		c.header = header
	}
}

// NewRecordStream returns a mocked record stream over the provided records.
// By default the header is the column list of the first record.
func NewRecordStream(records []core.Record, opts ...StreamOption) *builders.RecordStream {
	config := &streamConfig{}
	if len(records) > 0 {
		config.header = records[0].Columns()
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := builders.NextSlice(records, func(rec core.Record) (core.Record, error) {
		time.Sleep(config.nextSleep)
		return rec, nil
	})

	return builders.NewRecordStreamBuilder().
		WithHeader(config.header).
		WithNextFunc(next, hasNext).
		Build()
}
