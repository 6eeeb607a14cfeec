package model

import (
	"cmp"
	"slices"
)

// Uncategorized is the series assigned to tasks no classification rule matched.
const Uncategorized = "Uncategorized"

// SeriesGroup holds the tasks that belong to one model series.
type SeriesGroup struct {
	Series string   `json:"series"`
	Tasks  []string `json:"tasks"`
}

// GroupBySeries inverts the mapping into series groups.
// Groups are ordered by series name with Uncategorized last, and the tasks
// of each group are ordered by name.
func GroupBySeries(m *Mapping) []SeriesGroup {
	return GroupEntries(m.Slice())
}

// GroupEntries groups classified entries the same way as GroupBySeries.
// A task listed more than once appears that many times in its group.
func GroupEntries(entries []Entry) []SeriesGroup {
	byName := make(map[string][]string)
	for _, e := range entries {
		byName[e.Series] = append(byName[e.Series], e.Task)
	}

	groups := make([]SeriesGroup, 0, len(byName))
	for series, tasks := range byName {
		slices.Sort(tasks)
		groups = append(groups, SeriesGroup{Series: series, Tasks: tasks})
	}

	slices.SortFunc(groups, func(a, b SeriesGroup) int {
		aLast, bLast := a.Series == Uncategorized, b.Series == Uncategorized
		switch {
		case aLast && !bLast:
			return 1
		case !aLast && bLast:
			return -1
		}
		return cmp.Compare(a.Series, b.Series)
	})
	return groups
}
