package core

type (
	// Row and Header are attributes of RecordStream iterators.
	// A Row is positional and is paired with the stream's Header to form a Record.
	Row    []any
	Header []string

	// RecordStream is the iterator form of a source's output.
	// Drivers that page or stream their data return one of these and
	// Drain turns it into a record slice.
	RecordStream interface {
		Header() Header
		Next() (Record, error)
		HasNext() bool
		Close()
	}
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// Columns overrides the dataset's column order. Empty means provenance order.
		Columns []string
		// Title is used by formatters that emit a heading.
		Title string
	}

	// Formatter converts a consolidated dataset to bytes.
	// Formatters must only read from the dataset.
	Formatter interface {
		Format(dataset *Dataset, opts *FormatterOptions) ([]byte, error)
	}
)

// ColumnsOrDefault returns the explicit column order if one was provided,
// otherwise the fallback.
func (o *FormatterOptions) ColumnsOrDefault(fallback []string) []string {
	if o == nil || len(o.Columns) == 0 {
		return fallback
	}
	return o.Columns
}

// TitleOrDefault returns the title if set, otherwise the fallback.
func (o *FormatterOptions) TitleOrDefault(fallback string) string {
	if o == nil || o.Title == "" {
		return fallback
	}
	return o.Title
}
