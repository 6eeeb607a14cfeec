package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/taskseries/internal/model"
)

var (
	// ErrSourceNotFound is returned when an input file does not exist.
	ErrSourceNotFound = errors.New("task source not found")

	// ErrNoSnapshot is returned when the store holds no matching snapshot.
	ErrNoSnapshot = errors.New("no saved snapshot")
)

// Supplier produces a fully populated Mapping.
type Supplier interface {
	Supply(ctx context.Context) (*model.Mapping, error)
}

// Func adapts an ordinary function to the Supplier interface.
type Func func(ctx context.Context) (*model.Mapping, error)

// Supply calls f(ctx).
func (f Func) Supply(ctx context.Context) (*model.Mapping, error) {
	return f(ctx)
}

// Static serves a fixed, ordered list of entries.
type Static struct {
	entries []model.Entry
}

// NewStatic creates a Static supplier over entries.
func NewStatic(entries ...model.Entry) *Static {
	return &Static{entries: entries}
}

// Supply builds a fresh Mapping on every call. A repeated task keeps its
// first position and takes the last series.
func (s *Static) Supply(ctx context.Context) (*model.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := model.NewMapping()
	for i, e := range s.entries {
		if err := m.Add(e.Task, e.Series); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return m, nil
}
