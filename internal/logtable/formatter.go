package logtable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Kind selects the record layout of an input file.
type Kind string

const (
	// KindTask is the raw task log layout.
	KindTask Kind = "task"
	// KindModel is the model statistics layout.
	KindModel Kind = "model"
)

// ErrUnknownKind is returned for a Kind other than KindTask or KindModel.
var ErrUnknownKind = errors.New("unknown record kind")

// ParseKind converts a flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindTask, KindModel:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownKind, s, KindTask, KindModel)
	}
}

// tableSeparator joins consecutive tables.
const tableSeparator = "\n\n\n"

// Summary describes a finished formatting run.
type Summary struct {
	// Records is the number of lines rendered as tables.
	Records int
	// Skipped is the number of non-blank lines that could not be parsed.
	Skipped int
	// AreaTotals holds the per-area totals of a task log, largest first.
	AreaTotals []AreaCount
	// TotalCount is the sum of countNum over a model statistics file.
	TotalCount int
}

// Formatter renders log files as tables.
type Formatter struct {
	logger *slog.Logger
}

// NewFormatter creates a Formatter. A nil logger uses slog.Default().
func NewFormatter(logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{logger: logger}
}

// Format dispatches on kind.
func (f *Formatter) Format(kind Kind, r io.Reader, w io.Writer) (Summary, error) {
	switch kind {
	case KindTask:
		return f.FormatTaskLog(r, w)
	case KindModel:
		return f.FormatModelStats(r, w)
	default:
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// FormatTaskLog renders every task log record followed by the city sum.
func (f *Formatter) FormatTaskLog(r io.Reader, w io.Writer) (Summary, error) {
	var (
		summary Summary
		tables  []string
	)
	totals := NewTotals()

	err := eachLine(r, func(line string) {
		rec, warnings, ok := ParseTaskLine(line)
		if !ok {
			f.logger.Warn("could not parse line", "line", line)
			summary.Skipped++
			return
		}
		f.logWarnings(warnings, "taskId", rec.TaskID)
		tables = append(tables, FormatTaskTable(rec))
		totals.Add(rec.Areas)
		summary.Records++
	})
	if err != nil {
		return summary, err
	}

	summary.AreaTotals = totals.Sorted()
	sums := make([]string, len(summary.AreaTotals))
	for i, a := range summary.AreaTotals {
		sums[i] = a.Area + ": " + strconv.Itoa(a.Count)
	}

	out := strings.Join(tables, tableSeparator) + tableSeparator +
		"city_sum: \n" + strings.Join(sums, "\n")
	_, err = io.WriteString(w, out)
	return summary, err
}

// FormatModelStats renders every model statistics record followed by the
// total count.
func (f *Formatter) FormatModelStats(r io.Reader, w io.Writer) (Summary, error) {
	var (
		summary Summary
		tables  []string
	)

	err := eachLine(r, func(line string) {
		rec, warnings, ok := ParseModelLine(line)
		if !ok {
			f.logger.Warn("could not parse line", "line", line)
			summary.Skipped++
			return
		}
		f.logWarnings(warnings, "modelName", rec.ModelName)
		tables = append(tables, FormatModelTable(rec))
		summary.TotalCount += rec.CountNum
		summary.Records++
	})
	if err != nil {
		return summary, err
	}

	out := strings.Join(tables, tableSeparator) + tableSeparator +
		"Total countNum: " + strconv.Itoa(summary.TotalCount)
	_, err = io.WriteString(w, out)
	return summary, err
}

func (f *Formatter) logWarnings(warnings []string, key, value string) {
	for _, warning := range warnings {
		f.logger.Warn("skipped area entry", key, value, "reason", warning)
	}
}

// eachLine calls fn with every trimmed, non-blank line of r.
func eachLine(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
