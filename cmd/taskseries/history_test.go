package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/taskseries/internal/database"
	"github.com/nao1215/taskseries/internal/model"
)

func seedHistory(t *testing.T, dbDir string) {
	t.Helper()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, s := range []struct {
		source string
		m      *model.Mapping
	}{
		{"a.txt", model.NewMapping(model.Entry{Task: "t1", Series: "s1"})},
		{"a.txt", model.NewMapping(model.Entry{Task: "t1", Series: "s2"})},
		{"b.txt", model.NewMapping(model.Entry{Task: "t9", Series: "s9"})},
	} {
		if _, _, err := db.SaveSnapshot(ctx, s.source, s.m); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}
	}
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "db")
	seedHistory(t, dbDir)

	t.Run("lists snapshots of a source", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "history", "--db-dir", dbDir, "a.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Snapshots for a.txt (2)") {
			t.Errorf("unexpected header:\n%s", stdout)
		}
		if strings.Contains(stdout, "b.txt") {
			t.Errorf("unexpected other source:\n%s", stdout)
		}
	})

	t.Run("lists all snapshots", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Snapshots (3)") {
			t.Errorf("unexpected header:\n%s", stdout)
		}
	})

	t.Run("lists sources", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "history", "--db-dir", dbDir, "--sources")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "  a.txt\n  b.txt\n") {
			t.Errorf("unexpected sources:\n%s", stdout)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "history", "--db-dir", dbDir, "zzz.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No snapshots found for zzz.txt") {
			t.Errorf("unexpected output:\n%s", stdout)
		}
	})
}

func TestShortDigest(t *testing.T) {
	t.Parallel()

	if got := shortDigest("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("unexpected %q", got)
	}
	if got := shortDigest("abc"); got != "abc" {
		t.Errorf("unexpected %q", got)
	}
}
