package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/taskseries/internal/model"
)

// JSONWriter outputs the mapping as a JSON array of {"task", "series"}
// objects in mapping order.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is shorthand for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the mapping in JSON format followed by a newline.
func (w *JSONWriter) Write(m *model.Mapping) (int, error) {
	return w.writeJSON(m.Slice())
}

// WriteGroups outputs series groups in JSON format.
func (w *JSONWriter) WriteGroups(groups []model.SeriesGroup) (int, error) {
	if groups == nil {
		groups = []model.SeriesGroup{}
	}
	return w.writeJSON(groups)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
