package model

import (
	"slices"
	"testing"
)

func TestGroupBySeries(t *testing.T) {
	t.Parallel()

	t.Run("orders series with Uncategorized last", func(t *testing.T) {
		t.Parallel()

		m := NewMapping(
			Entry{Task: "zz", Series: Uncategorized},
			Entry{Task: "xm_jj_0716", Series: "xm_jj"},
			Entry{Task: "0420_bc_run", Series: "bc"},
			Entry{Task: "aa", Series: Uncategorized},
		)

		groups := GroupBySeries(m)
		var names []string
		for _, g := range groups {
			names = append(names, g.Series)
		}
		want := []string{"bc", "xm_jj", Uncategorized}
		if !slices.Equal(names, want) {
			t.Errorf("expected %v, got %v", want, names)
		}

		last := groups[len(groups)-1]
		if !slices.Equal(last.Tasks, []string{"aa", "zz"}) {
			t.Errorf("expected sorted tasks, got %v", last.Tasks)
		}
	})

	t.Run("uppercase series sort before lowercase", func(t *testing.T) {
		t.Parallel()

		m := NewMapping(
			Entry{Task: "t1", Series: "jja20-3"},
			Entry{Task: "t2", Series: "LXd10"},
		)
		groups := GroupBySeries(m)
		if groups[0].Series != "LXd10" {
			t.Errorf("expected LXd10 first, got %q", groups[0].Series)
		}
	})

	t.Run("empty mapping has no groups", func(t *testing.T) {
		t.Parallel()

		if groups := GroupBySeries(NewMapping()); len(groups) != 0 {
			t.Errorf("expected no groups, got %v", groups)
		}
	})
}

func TestGroupEntries(t *testing.T) {
	t.Parallel()

	groups := GroupEntries([]Entry{
		{Task: "bc_0420", Series: "bc"},
		{Task: "0611-bc", Series: "bc"},
		{Task: "bc_0420", Series: "bc"},
	})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %v", groups)
	}
	want := []string{"0611-bc", "bc_0420", "bc_0420"}
	if !slices.Equal(groups[0].Tasks, want) {
		t.Errorf("expected %v, got %v", want, groups[0].Tasks)
	}
}
