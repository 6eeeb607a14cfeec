package supplier

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/taskseries/internal/model"
	"github.com/nao1215/taskseries/internal/series"
	"github.com/nao1215/taskseries/internal/textenc"
)

// StdinPath is the input path that stands for standard input.
const StdinPath = "-"

// DefaultConcurrency is the number of input files read at once.
const DefaultConcurrency = 4

// File classifies the task names listed in one or more files.
// Each line holds one task name; lines are trimmed and blank lines skipped.
type File struct {
	paths       []string
	classifier  *series.Classifier
	encoding    string
	concurrency int
	stdin       io.Reader
	logger      *slog.Logger
}

// FileOption configures a File supplier.
type FileOption func(*File)

// WithClassifier sets the classifier. The default uses series.DefaultRules.
func WithClassifier(c *series.Classifier) FileOption {
	return func(f *File) {
		if c != nil {
			f.classifier = c
		}
	}
}

// WithEncoding sets the text encoding of the input files.
func WithEncoding(name string) FileOption {
	return func(f *File) {
		f.encoding = name
	}
}

// WithConcurrency sets how many files are read at once.
func WithConcurrency(n int) FileOption {
	return func(f *File) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithStdin sets the reader used for the "-" path.
func WithStdin(r io.Reader) FileOption {
	return func(f *File) {
		f.stdin = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FileOption {
	return func(f *File) {
		f.logger = logger
	}
}

// NewFile creates a File supplier over paths.
func NewFile(paths []string, opts ...FileOption) *File {
	f := &File{
		paths:       paths,
		encoding:    textenc.UTF8,
		concurrency: DefaultConcurrency,
		stdin:       os.Stdin,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.classifier == nil {
		f.classifier = series.NewClassifier()
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Supply reads every path and classifies its task names. Files are read
// concurrently; the Mapping lists tasks in path order, then line order.
func (f *File) Supply(ctx context.Context) (*model.Mapping, error) {
	entries, err := f.Entries(ctx)
	if err != nil {
		return nil, err
	}

	m := model.NewMapping()
	for _, e := range entries {
		m.Set(e.Task, e.Series)
	}
	return m, nil
}

// Entries reads every path and classifies each line on its own.
// Unlike Supply, a task listed twice yields two entries.
func (f *File) Entries(ctx context.Context) ([]model.Entry, error) {
	tasksPerPath := make([][]string, len(f.paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, path := range f.paths {
		g.Go(func() error {
			tasks, err := f.readPath(gctx, path)
			if err != nil {
				return err
			}
			f.logger.Debug("read task list", "path", path, "tasks", len(tasks))
			tasksPerPath[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []model.Entry
	for _, tasks := range tasksPerPath {
		for _, task := range tasks {
			entries = append(entries, model.Entry{Task: task, Series: f.classifier.SeriesOf(task)})
		}
	}
	return entries, nil
}

func (f *File) readPath(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == StdinPath {
		return ReadTasks(f.stdin, f.encoding)
	}

	file, err := os.Open(path) //nolint:gosec // Reading user-provided paths is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	tasks, err := ReadTasks(file, f.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tasks, nil
}

// utf8BOM is stripped from the first line of a task list.
const utf8BOM = "\ufeff"

// ReadTasks returns the non-blank, trimmed lines of r decoded from encoding.
func ReadTasks(r io.Reader, encoding string) ([]string, error) {
	decoded, err := textenc.NewReader(r, encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tasks []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}
		task := strings.TrimSpace(line)
		if task == "" {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, scanner.Err()
}
