package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/taskseries/internal/model"
	"github.com/nao1215/taskseries/internal/supplier"
)

// Reporter obtains a Mapping from a Supplier and writes it.
type Reporter struct {
	supplier supplier.Supplier
	writer   Writer
	sorted   bool
	logger   *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithWriter sets the output writer. The default is a LineWriter on stdout.
func WithWriter(w Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

// WithSorted orders entries by task name instead of mapping order.
func WithSorted(sorted bool) Option {
	return func(r *Reporter) {
		r.sorted = sorted
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// NewReporter creates a Reporter that reads from s.
func NewReporter(s supplier.Supplier, opts ...Option) *Reporter {
	r := &Reporter{supplier: s}
	for _, opt := range opts {
		opt(r)
	}
	if r.writer == nil {
		r.writer = NewLineWriter(os.Stdout)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run supplies the mapping and writes one output record per entry.
// An empty mapping writes nothing and is not an error.
func (r *Reporter) Run(ctx context.Context) error {
	_, err := r.Report(ctx)
	return err
}

// Report is like Run and also returns the mapping that was written.
func (r *Reporter) Report(ctx context.Context) (*model.Mapping, error) {
	m, err := r.supplier.Supply(ctx)
	if err != nil {
		return nil, fmt.Errorf("supply mapping: %w", err)
	}
	if m == nil {
		m = model.NewMapping()
	}

	out := m
	if r.sorted {
		out = m.Sorted()
	}

	n, err := r.writer.Write(out)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	r.logger.Debug("report written", "entries", out.Len(), "bytes", n, "sorted", r.sorted)
	return m, nil
}
