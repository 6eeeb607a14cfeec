package report

import (
	"bufio"
	"io"

	"github.com/nao1215/taskseries/internal/model"
)

// LineWriter writes one line per entry:
//
//	Task: "<task>" -> Series: "<series>"
//
// Task and series are written verbatim; embedded quotes are not escaped.
type LineWriter struct {
	baseWriter
}

// NewLineWriter creates a LineWriter that outputs to the given writer.
func NewLineWriter(output io.Writer) *LineWriter {
	return &LineWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the mapping in mapping order.
func (w *LineWriter) Write(m *model.Mapping) (int, error) {
	bw := bufio.NewWriter(w.output)

	var total int
	for task, series := range m.Entries() {
		n, err := bw.WriteString(FormatLine(task, series))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// FormatLine returns the report line for one entry, including the newline.
func FormatLine(task, series string) string {
	return `Task: "` + task + `" -> Series: "` + series + "\"\n"
}
