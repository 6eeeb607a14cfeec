package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/taskseries/internal/supplier"
	"github.com/nao1215/taskseries/internal/textenc"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "taskseries"

	// DefaultInputFile is read when neither arguments nor the config file
	// name a source.
	DefaultInputFile = "tasks.txt"

	// StaticSource is the snapshot source name of the config file's tasks table.
	StaticSource = "config:tasks"

	// DefaultEncoding is the text encoding of input files.
	DefaultEncoding = textenc.UTF8

	// DefaultConcurrency is the number of input files read at once.
	DefaultConcurrency = supplier.DefaultConcurrency
)

// Config holds the options of one report run. It is built from CLI flags
// and the config file and passed down explicitly.
type Config struct {
	// Inputs are task-list paths. "-" reads standard input.
	// With FromDB they only name the snapshot source.
	Inputs []string

	// Encoding is the text encoding of the inputs (see textenc.Names).
	Encoding string

	// Sort prints entries in task order instead of insertion order.
	Sort bool

	// Concurrency is the number of input files read in parallel.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport and MarkdownReport select the output format.
	// Both false means the line format.
	JSONReport     bool
	MarkdownReport bool

	// Chart adds a pie chart to the Markdown report.
	Chart bool

	// OutputFile receives the report instead of stdout when set.
	OutputFile string

	// ConfigFilePath is the --config value. Empty means search the
	// working and home directories.
	ConfigFilePath string

	// File is the loaded config file, never nil after loading.
	File *File

	// DBDir is the directory of the snapshot database.
	DBDir string

	// SaveToDB stores the reported mapping as a snapshot.
	SaveToDB bool

	// FromDB reads the mapping from the snapshot store instead of inputs.
	FromDB bool

	// SnapshotID selects a snapshot by ID when FromDB is set. Zero means
	// the latest snapshot of the source.
	SnapshotID int64
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Encoding:    DefaultEncoding,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		File:        &File{},
	}
}

// XDGDataDir returns the data directory holding the snapshot database.
// On Linux: ~/.local/share/taskseries
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the taskseries config directory.
// On Linux: ~/.config/taskseries
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Chart && !c.MarkdownReport {
		return ErrChartRequiresMarkdown
	}
	if err := textenc.Validate(c.Encoding); err != nil {
		return err
	}
	if c.SnapshotID < 0 {
		return ErrInvalidSnapshotID
	}
	if c.FromDB && c.SaveToDB {
		return ErrSaveFromDB
	}
	return nil
}

// UsesStaticTasks reports whether the run reports the config file's
// tasks table instead of reading inputs.
func (c *Config) UsesStaticTasks() bool {
	return len(c.Inputs) == 0 && c.File.HasTasks()
}

// InputPaths returns the task-list files to read.
func (c *Config) InputPaths() []string {
	if len(c.Inputs) == 0 {
		return []string{DefaultInputFile}
	}
	return c.Inputs
}

// Source names the snapshot history a run belongs to. With --from-db the
// inputs only select this name and are not read.
func (c *Config) Source() string {
	if c.UsesStaticTasks() {
		return StaticSource
	}
	return SourceName(c.InputPaths())
}
