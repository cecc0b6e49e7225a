package score

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// SortMode selects the ordering of metrics in list views.
type SortMode string

const (
	// SortCategory groups by category order, highest value first within a group.
	SortCategory SortMode = "category"
	// SortValueDesc orders by value, highest first.
	SortValueDesc SortMode = "value-desc"
	// SortValueAsc orders by value, lowest first.
	SortValueAsc SortMode = "value-asc"
)

// ParseSortMode validates a sort mode name.
func ParseSortMode(v string) (SortMode, error) {
	switch SortMode(v) {
	case SortCategory, SortValueDesc, SortValueAsc:
		return SortMode(v), nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want category, value-desc or value-asc)", v)
	}
}

// Order returns the metric names visible under sel, arranged by mode.
// Equal values keep taxonomy order.
func Order(t *taxonomy.Taxonomy, s ScoreSet, mode SortMode, sel *Selection) []string {
	type entry struct {
		name     string
		category int
		value    float64
	}
	entries := []entry{}
	for ci, c := range t.Categories() {
		if sel != nil && !sel.Contains(c.Name) {
			continue
		}
		for _, m := range c.Metrics {
			entries = append(entries, entry{name: m.Name, category: ci, value: s[m.Name]})
		}
	}

	switch mode {
	case SortValueDesc:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	case SortValueAsc:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].value < entries[j].value })
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].category != entries[j].category {
				return entries[i].category < entries[j].category
			}
			return entries[i].value > entries[j].value
		})
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}
