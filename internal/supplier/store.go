package supplier

import (
	"context"
	"fmt"

	"github.com/nao1215/taskseries/internal/model"
)

// SnapshotLoader loads saved mappings. *database.SnapshotDB implements it.
type SnapshotLoader interface {
	LatestSnapshot(ctx context.Context, source string) (*model.Mapping, error)
	SnapshotByID(ctx context.Context, id int64) (*model.Mapping, error)
}

// Store supplies a previously saved snapshot.
type Store struct {
	loader SnapshotLoader
	source string
	id     int64
}

// NewStore creates a Store supplier. A positive id selects that snapshot;
// otherwise the latest snapshot of source is used.
func NewStore(loader SnapshotLoader, source string, id int64) *Store {
	return &Store{loader: loader, source: source, id: id}
}

// Supply loads the selected snapshot.
func (s *Store) Supply(ctx context.Context) (*model.Mapping, error) {
	var (
		m   *model.Mapping
		err error
	)
	if s.id > 0 {
		m, err = s.loader.SnapshotByID(ctx, s.id)
	} else {
		m, err = s.loader.LatestSnapshot(ctx, s.source)
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		if s.id > 0 {
			return nil, fmt.Errorf("%w: id %d", ErrNoSnapshot, s.id)
		}
		return nil, fmt.Errorf("%w: source %q", ErrNoSnapshot, s.source)
	}
	return m, nil
}
