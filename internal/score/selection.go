package score

import "github.com/verte-zerg/fishcap/internal/taxonomy"

// Selection tracks which categories a single chart shows.
// Each chart owns its own Selection. The zero value selects nothing.
type Selection struct {
	showAll  bool
	selected map[string]struct{}
}

// NewSelection returns a selection with every named category selected.
func NewSelection(names ...string) *Selection {
	s := &Selection{selected: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.selected[n] = struct{}{}
	}
	return s
}

// Toggle flips a category and reports whether it is now selected.
func (s *Selection) Toggle(name string) bool {
	if _, ok := s.selected[name]; ok {
		delete(s.selected, name)
		return false
	}
	s.Add(name)
	return true
}

// Add selects a category. Adding a selected category is a no-op.
func (s *Selection) Add(name string) {
	if s.selected == nil {
		s.selected = map[string]struct{}{}
	}
	s.selected[name] = struct{}{}
}

// SelectAll selects every category of the taxonomy.
func (s *Selection) SelectAll(t *taxonomy.Taxonomy) {
	for _, n := range t.CategoryNames() {
		s.Add(n)
	}
}

// SetShowAll switches between showing every category and the explicit selection.
func (s *Selection) SetShowAll(v bool) {
	s.showAll = v
}

// ShowAll reports whether the selection is bypassed.
func (s *Selection) ShowAll() bool {
	return s.showAll
}

// Contains reports whether the category is visible.
func (s *Selection) Contains(name string) bool {
	if s.showAll {
		return true
	}
	_, ok := s.selected[name]
	return ok
}

// Selected reports whether the category is explicitly selected, ignoring ShowAll.
func (s *Selection) Selected(name string) bool {
	_, ok := s.selected[name]
	return ok
}

// Visible returns the visible categories in taxonomy order.
func (s *Selection) Visible(t *taxonomy.Taxonomy) []taxonomy.Category {
	out := []taxonomy.Category{}
	for _, c := range t.Categories() {
		if s.Contains(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// VisibleMetrics returns the metric names of visible categories in taxonomy order.
func (s *Selection) VisibleMetrics(t *taxonomy.Taxonomy) []string {
	out := []string{}
	for _, c := range s.Visible(t) {
		out = append(out, c.MetricNames()...)
	}
	return out
}

// Filter returns a copy of set restricted to visible metrics.
func (s *Selection) Filter(t *taxonomy.Taxonomy, set ScoreSet) ScoreSet {
	out := ScoreSet{}
	for _, name := range s.VisibleMetrics(t) {
		if v, ok := set[name]; ok {
			out[name] = v
		}
	}
	return out
}
