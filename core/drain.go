package core

import "fmt"

// Drain reads a record stream to the end and closes it.
func Drain(iter RecordStream) ([]Record, error) {
	// close iterator on return
	defer iter.Close()

	records := make([]Record, 0)
	for iter.HasNext() {
		rec, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("iter.Next: %w", err)
		}

		records = append(records, rec)
	}

	return records, nil
}
