package logtable

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// AreaCount is one area of an areaCountMap. Text holds the count as it
// was written in the log, leading zeros included; it is empty for
// computed totals.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
	Text  string `json:"-"`
}

// display returns the count as it should be printed.
func (a AreaCount) display() string {
	return numberText(a.Text, a.Count)
}

// parseAreaMap parses "{k1=v1, k2=v2}" keeping the original order.
// A repeated area keeps the position of its first occurrence and the
// value of its last one. Malformed pairs are returned as warnings and
// skipped.
func parseAreaMap(raw string) ([]AreaCount, []string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
	if strings.TrimSpace(inner) == "" {
		return []AreaCount{}, nil
	}

	var (
		areas    []AreaCount
		warnings []string
		index    = make(map[string]int)
	)
	for _, pair := range strings.Split(inner, ", ") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			warnings = append(warnings, fmt.Sprintf("malformed pair %q", pair))
			continue
		}
		text := strings.TrimSpace(value)
		count, err := strconv.Atoi(text)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("non-numeric count in pair %q", pair))
			continue
		}
		a := AreaCount{Area: strings.TrimSpace(key), Count: count, Text: text}
		if i, seen := index[a.Area]; seen {
			areas[i] = a
			continue
		}
		index[a.Area] = len(areas)
		areas = append(areas, a)
	}
	return areas, warnings
}

// sortByCount returns areas ordered by count, largest first.
// Areas with equal counts keep their original order.
func sortByCount(areas []AreaCount) []AreaCount {
	sorted := slices.Clone(areas)
	slices.SortStableFunc(sorted, func(a, b AreaCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return sorted
}

// Totals accumulates per-area counts, remembering first-seen order.
type Totals struct {
	order  []string
	counts map[string]int
}

// NewTotals creates an empty Totals.
func NewTotals() *Totals {
	return &Totals{counts: make(map[string]int)}
}

// Add adds every area count.
func (t *Totals) Add(areas []AreaCount) {
	for _, a := range areas {
		if _, ok := t.counts[a.Area]; !ok {
			t.order = append(t.order, a.Area)
		}
		t.counts[a.Area] += a.Count
	}
}

// Sorted returns the totals ordered by count, largest first.
func (t *Totals) Sorted() []AreaCount {
	out := make([]AreaCount, len(t.order))
	for i, area := range t.order {
		out[i] = AreaCount{Area: area, Count: t.counts[area]}
	}
	return sortByCount(out)
}
