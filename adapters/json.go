package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/reportgen/reportgen/core"
)

// Register client
func init() {
	_ = register(&JSON{}, "json")
}

var _ core.Adapter = (*JSON)(nil)

// JSON reads a local file holding an array of objects,
// or an object with the array under the data key.
type JSON struct{}

func (*JSON) Connect(params *core.SourceParams) (core.Extractor, error) {
	if params.Location == "" {
		return nil, errors.New("json: location is required")
	}

	return &jsonExtractor{
		path:    params.Location,
		dataKey: params.DataKey,
	}, nil
}

type jsonExtractor struct {
	path    string
	dataKey string
}

func (e *jsonExtractor) Extract(_ context.Context) ([]core.Record, error) {
	data, err := readTextFile(e.path)
	if err != nil {
		return nil, err
	}

	doc, err := decodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return recordList(doc, e.dataKey)
}

// decodeJSON decodes a single JSON document keeping object key order.
// Objects become records, arrays become []any and numbers json.Number.
func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", core.ErrParse)
	}

	return val, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		var pairs []any
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, key, val)
		}
		// closing brace
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return core.NewRecord(pairs...), nil
	case '[':
		list := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		// closing bracket
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// recordList picks the record list out of a decoded document.
// Without a data key the document itself must be the list.
func recordList(doc any, dataKey string) ([]core.Record, error) {
	if dataKey != "" {
		obj, ok := doc.(core.Record)
		if !ok {
			return nil, fmt.Errorf("%w: document is not an object", core.ErrInvalidResponseShape)
		}
		doc, ok = obj.Get(dataKey)
		if !ok {
			return nil, fmt.Errorf("%w: key %q not found", core.ErrInvalidResponseShape, dataKey)
		}
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", core.ErrInvalidResponseShape, doc)
	}

	records := make([]core.Record, 0, len(list))
	for i, item := range list {
		rec, ok := item.(core.Record)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not an object", core.ErrInvalidResponseShape, i)
		}
		records = append(records, rec)
	}

	return records, nil
}
