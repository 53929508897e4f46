package adapters

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/reportgen/reportgen/core"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// readTextFile reads a local file as UTF-8 text.
// A byte order mark is stripped and UTF-16 files carrying one are transcoded.
func readTextFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, path)
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return decodeText(data)
}

func decodeText(data []byte) ([]byte, error) {
	utf16 := bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE)
	if !utf16 && !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid utf-8", core.ErrEncoding)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEncoding, err)
	}

	return out, nil
}
