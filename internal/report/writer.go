package report

import (
	"io"

	"github.com/nao1215/taskseries/internal/model"
)

// Writer writes a Mapping in some output format.
type Writer interface {
	// Write outputs the mapping and returns the number of bytes written.
	Write(m *model.Mapping) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the mapping to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(mapping *model.Mapping) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(mapping)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
