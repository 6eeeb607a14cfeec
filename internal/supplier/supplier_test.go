package supplier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/taskseries/internal/model"
	"github.com/nao1215/taskseries/internal/series"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// writeFile writes content to name inside a temporary directory.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestFunc(t *testing.T) {
	t.Parallel()

	want := model.NewMapping(model.Entry{Task: "A", Series: "B"})
	s := Func(func(context.Context) (*model.Mapping, error) {
		return want, nil
	})

	got, err := s.Supply(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("expected the function's mapping")
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	t.Run("keeps order and first position of duplicates", func(t *testing.T) {
		t.Parallel()

		s := NewStatic(
			model.Entry{Task: "task1", Series: "seriesA"},
			model.Entry{Task: "task2", Series: "seriesB"},
			model.Entry{Task: "task1", Series: "seriesC"},
		)
		m, err := s.Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := m.Slice()
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0] != (model.Entry{Task: "task1", Series: "seriesC"}) {
			t.Errorf("unexpected first entry %+v", got[0])
		}
	})

	t.Run("each call returns a fresh mapping", func(t *testing.T) {
		t.Parallel()

		s := NewStatic(model.Entry{Task: "a", Series: "1"})
		m1, _ := s.Supply(context.Background())
		m1.Set("b", "2")
		m2, _ := s.Supply(context.Background())
		if m2.Len() != 1 {
			t.Errorf("expected fresh mapping, got %d entries", m2.Len())
		}
	})

	t.Run("rejects empty task", func(t *testing.T) {
		t.Parallel()

		s := NewStatic(model.Entry{Task: "", Series: "x"})
		_, err := s.Supply(context.Background())
		if !errors.Is(err, model.ErrEmptyTask) {
			t.Errorf("expected ErrEmptyTask, got %v", err)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		m, err := NewStatic().Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Len() != 0 {
			t.Errorf("expected empty mapping, got %d", m.Len())
		}
	})
}

func TestFileSupply(t *testing.T) {
	t.Parallel()

	t.Run("classifies every task", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "tasks.txt", []byte("xm_jj_0716\n\n  bc_0420  \nhello\n"))

		m, err := NewFile([]string{path}).Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []model.Entry{
			{Task: "xm_jj_0716", Series: "xm_jj"},
			{Task: "bc_0420", Series: "bc"},
			{Task: "hello", Series: model.Uncategorized},
		}
		got := m.Slice()
		if len(got) != len(want) {
			t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("merges files in argument order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var paths []string
		for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
			paths = append(paths, writeFile(t, dir, name, []byte(name+"_task\n")))
		}

		m, err := NewFile(paths, WithConcurrency(3)).Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := m.Slice()
		for i, want := range []string{"c.txt_task", "a.txt_task", "b.txt_task"} {
			if got[i].Task != want {
				t.Errorf("entry %d: expected %q, got %q", i, want, got[i].Task)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope.txt")
		_, err := NewFile([]string{path}).Supply(context.Background())
		if !errors.Is(err, ErrSourceNotFound) {
			t.Errorf("expected ErrSourceNotFound, got %v", err)
		}
	})

	t.Run("reads stdin for dash", func(t *testing.T) {
		t.Parallel()

		s := NewFile([]string{StdinPath}, WithStdin(strings.NewReader("u260\n")))
		m, err := s.Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := m.Get("u260"); v != "u260" {
			t.Errorf("expected u260, got %q", v)
		}
	})

	t.Run("custom classifier", func(t *testing.T) {
		t.Parallel()

		c := series.NewClassifier(series.MustCompile(`.`, "any"))
		s := NewFile([]string{StdinPath}, WithStdin(strings.NewReader("bc_0420\n")), WithClassifier(c))
		m, err := s.Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := m.Get("bc_0420"); v != "any" {
			t.Errorf("expected any, got %q", v)
		}
	})

	t.Run("decodes gbk input", func(t *testing.T) {
		t.Parallel()

		raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("剪辑_bc_0420\n"))
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		path := writeFile(t, t.TempDir(), "gbk.txt", raw)

		m, err := NewFile([]string{path}, WithEncoding("gbk")).Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := m.Get("剪辑_bc_0420"); !ok || v != "bc" {
			t.Errorf("expected decoded task in series bc, got %q (%v)", v, ok)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "tasks.txt", []byte("a\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFile([]string{path}).Supply(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestFileEntries(t *testing.T) {
	t.Parallel()

	t.Run("keeps repeated tasks", func(t *testing.T) {
		t.Parallel()

		s := NewFile([]string{StdinPath}, WithStdin(strings.NewReader("bc_0420\nhello\nbc_0420\n")))
		entries, err := s.Entries(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []model.Entry{
			{Task: "bc_0420", Series: "bc"},
			{Task: "hello", Series: model.Uncategorized},
			{Task: "bc_0420", Series: "bc"},
		}
		if !slices.Equal(entries, want) {
			t.Errorf("expected %+v, got %+v", want, entries)
		}
	})

	t.Run("blank input has no entries", func(t *testing.T) {
		t.Parallel()

		s := NewFile([]string{StdinPath}, WithStdin(strings.NewReader("\n  \n")))
		entries, err := s.Entries(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %+v", entries)
		}
	})
}

func TestReadTasks(t *testing.T) {
	t.Parallel()

	tasks, err := ReadTasks(strings.NewReader("\ufefffirst\r\n second \n\n"), "utf-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0] != "first" || tasks[1] != "second" {
		t.Errorf("unexpected tasks %q", tasks)
	}
}

// fakeLoader is an in-memory SnapshotLoader.
type fakeLoader struct {
	latest map[string]*model.Mapping
	byID   map[int64]*model.Mapping
	err    error
}

func (f *fakeLoader) LatestSnapshot(_ context.Context, source string) (*model.Mapping, error) {
	return f.latest[source], f.err
}

func (f *fakeLoader) SnapshotByID(_ context.Context, id int64) (*model.Mapping, error) {
	return f.byID[id], f.err
}

func TestStore(t *testing.T) {
	t.Parallel()

	latest := model.NewMapping(model.Entry{Task: "a", Series: "latest"})
	old := model.NewMapping(model.Entry{Task: "a", Series: "old"})
	loader := &fakeLoader{
		latest: map[string]*model.Mapping{"tasks.txt": latest},
		byID:   map[int64]*model.Mapping{7: old},
	}

	t.Run("latest by source", func(t *testing.T) {
		t.Parallel()

		m, err := NewStore(loader, "tasks.txt", 0).Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != latest {
			t.Error("expected latest snapshot")
		}
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()

		m, err := NewStore(loader, "tasks.txt", 7).Supply(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != old {
			t.Error("expected snapshot 7")
		}
	})

	t.Run("missing snapshot", func(t *testing.T) {
		t.Parallel()

		_, err := NewStore(loader, "other.txt", 0).Supply(context.Background())
		if !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("expected ErrNoSnapshot, got %v", err)
		}
		_, err = NewStore(loader, "", 99).Supply(context.Background())
		if !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("expected ErrNoSnapshot, got %v", err)
		}
	})

	t.Run("loader error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := NewStore(&fakeLoader{err: boom}, "x", 0).Supply(context.Background())
		if !errors.Is(err, boom) {
			t.Errorf("expected loader error, got %v", err)
		}
	})
}
