package model

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

// ErrEmptyTask is returned when an entry is added with an empty task name.
var ErrEmptyTask = errors.New("task name must not be empty")

// Entry is a single task-name to model-series pair.
type Entry struct {
	// Task is the task identifier. It may contain arbitrary Unicode text
	// and punctuation, including quote characters.
	Task string `json:"task" yaml:"task"`

	// Series is the model series the task belongs to.
	Series string `json:"series" yaml:"series"`
}

// Mapping is a finite collection of Entries keyed uniquely by task.
// Iteration follows insertion order. Replacing the series of an existing
// task keeps the task at its original position.
//
// The zero value is an empty Mapping ready to use.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping creates a Mapping from the given entries using Set semantics.
func NewMapping(entries ...Entry) *Mapping {
	m := &Mapping{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.Set(e.Task, e.Series)
	}
	return m
}

// Set inserts or replaces the series for task.
func (m *Mapping) Set(task, series string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[task]; ok {
		m.entries[i].Series = series
		return
	}
	m.index[task] = len(m.entries)
	m.entries = append(m.entries, Entry{Task: task, Series: series})
}

// Add is like Set but rejects empty or whitespace-only task names.
func (m *Mapping) Add(task, series string) error {
	if strings.TrimSpace(task) == "" {
		return ErrEmptyTask
	}
	m.Set(task, series)
	return nil
}

// Get returns the series for task and whether the task is present.
func (m *Mapping) Get(task string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[task]
	if !ok {
		return "", false
	}
	return m.entries[i].Series, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a lazy sequence of (task, series) pairs in mapping order.
func (m *Mapping) Entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Task, e.Series) {
				return
			}
		}
	}
}

// Slice returns a copy of the entries in mapping order.
func (m *Mapping) Slice() []Entry {
	if m == nil {
		return []Entry{}
	}
	return slices.Clone(m.entries)
}

// Sorted returns a new Mapping with the same entries ordered by task.
// The receiver is left untouched.
func (m *Mapping) Sorted() *Mapping {
	entries := m.Slice()
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Task, b.Task)
	})
	return NewMapping(entries...)
}

// Equal reports whether both mappings hold the same entries in the same order.
func (m *Mapping) Equal(other *Mapping) bool {
	return slices.Equal(m.Slice(), other.Slice())
}
