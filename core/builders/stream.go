package builders

import (
	"errors"
	"sync"

	"github.com/reportgen/reportgen/core"
)

var _ core.RecordStream = (*RecordStream)(nil)

// RecordStream fills the core.RecordStream interface for all drivers.
type RecordStream struct {
	next    func() (core.Record, error)
	hasNext func() bool
	close   func()
	header  core.Header
	once    sync.Once
}

func (s *RecordStream) Header() core.Header {
	return s.header
}

func (s *RecordStream) HasNext() bool {
	return s.hasNext()
}

func (s *RecordStream) Next() (core.Record, error) {
	rec, err := s.next()
	if err != nil {
		s.Close()
		return core.Record{}, err
	}
	return rec, nil
}

func (s *RecordStream) Close() {
	s.once.Do(s.close)
	s.hasNext = func() bool {
		return false
	}
}

// RecordStreamBuilder builds the record stream
type RecordStreamBuilder struct {
	next    func() (core.Record, error)
	hasNext func() bool
	header  core.Header
	close   func()
}

func NewRecordStreamBuilder() *RecordStreamBuilder {
	return &RecordStreamBuilder{
		next:    func() (core.Record, error) { return core.Record{}, errors.New("no next record") },
		hasNext: func() bool { return false },
		header:  core.Header{},
		close:   func() {},
	}
}

func (b *RecordStreamBuilder) WithNextFunc(fn func() (core.Record, error), has func() bool) *RecordStreamBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

// WithNextRowFunc pairs every positional row with the header.
// Call it after WithHeader.
func (b *RecordStreamBuilder) WithNextRowFunc(fn func() (core.Row, error), has func() bool) *RecordStreamBuilder {
	header := b.header
	b.next = func() (core.Record, error) {
		row, err := fn()
		if err != nil {
			return core.Record{}, err
		}
		return core.RecordFromRow(header, row), nil
	}
	b.hasNext = has
	return b
}

func (b *RecordStreamBuilder) WithHeader(header core.Header) *RecordStreamBuilder {
	b.header = header
	return b
}

func (b *RecordStreamBuilder) WithCloseFunc(fn func()) *RecordStreamBuilder {
	b.close = fn
	return b
}

func (b *RecordStreamBuilder) Build() *RecordStream {
	return &RecordStream{
		next:    b.next,
		hasNext: b.hasNext,
		header:  b.header,
		close:   b.close,
	}
}
