package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reportgen/reportgen/models"
)

// Writer delivers a rendered report somewhere.
type Writer interface {
	Write(data []byte) error
	Name() string
}

var (
	_ Writer = (*File)(nil)
	_ Writer = (*Stream)(nil)
)

type File struct {
	fileName string
	log      models.Logger
}

func NewFile(fileName string, logger models.Logger) *File {
	return &File{
		fileName: fileName,
		log:      logger,
	}
}

func (fo *File) Name() string {
	return fo.fileName
}

// Write replaces the file contents. Parent directories are created as needed.
func (fo *File) Write(data []byte) error {
	if dir := filepath.Dir(fo.fileName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	file, err := os.Create(fo.fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", fo.fileName, err)
	}

	fo.log.Info("successfully saved report to " + fo.fileName)
	return nil
}

// Stream writes to an already open writer such as stdout.
type Stream struct {
	name string
	w    io.Writer
}

func NewStream(name string, w io.Writer) *Stream {
	return &Stream{
		name: name,
		w:    w,
	}
}

func (so *Stream) Name() string {
	return so.name
}

func (so *Stream) Write(data []byte) error {
	_, err := so.w.Write(data)
	return err
}
