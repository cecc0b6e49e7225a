// Package taxonomy defines the fixed metric to category mapping and display labels.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName is returned when a category or metric has no name.
	ErrEmptyName = errors.New("empty name")
	// ErrDuplicateCategory is returned when two categories share a name.
	ErrDuplicateCategory = errors.New("duplicate category")
	// ErrDuplicateMetric is returned when a metric appears more than once.
	ErrDuplicateMetric = errors.New("duplicate metric")
)

// Metric is a single named quantity belonging to exactly one category.
type Metric struct {
	Name    string
	Display string
	Short   string
}

// Label returns the display label, or the abbreviated one when short is set.
func (m Metric) Label(short bool) string {
	if short && m.Short != "" {
		return m.Short
	}
	if m.Display != "" {
		return m.Display
	}
	return m.Name
}

// Category is a named, ordered group of metrics.
type Category struct {
	Name    string
	Metrics []Metric
	Color   string
}

// MetricNames returns the names of the category's metrics in order.
func (c Category) MetricNames() []string {
	names := make([]string, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		names = append(names, m.Name)
	}
	return names
}

// Taxonomy is an immutable set of categories with a metric index.
type Taxonomy struct {
	categories []Category
	byCategory map[string]int
	byMetric   map[string]metricRef
	order      []string
}

type metricRef struct {
	category int
	position int
	index    int
}

// New validates the categories and builds a Taxonomy.
func New(categories []Category) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		byCategory: make(map[string]int, len(categories)),
		byMetric:   map[string]metricRef{},
	}
	for ci, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category %d: %w", ci, ErrEmptyName)
		}
		if _, ok := t.byCategory[c.Name]; ok {
			return nil, fmt.Errorf("%q: %w", c.Name, ErrDuplicateCategory)
		}
		t.byCategory[c.Name] = ci
		metrics := append([]Metric(nil), c.Metrics...)
		for mi, m := range metrics {
			if strings.TrimSpace(m.Name) == "" {
				return nil, fmt.Errorf("category %q metric %d: %w", c.Name, mi, ErrEmptyName)
			}
			if prev, ok := t.byMetric[m.Name]; ok {
				return nil, fmt.Errorf("%q in %q and %q: %w", m.Name, categories[prev.category].Name, c.Name, ErrDuplicateMetric)
			}
			t.byMetric[m.Name] = metricRef{category: ci, position: mi, index: len(t.order)}
			t.order = append(t.order, m.Name)
		}
		c.Metrics = metrics
		t.categories = append(t.categories, c)
	}
	return t, nil
}

// Categories returns a copy of the categories in display order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		c.Metrics = append([]Metric(nil), c.Metrics...)
		out[i] = c
	}
	return out
}

// CategoryNames returns category names in display order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, 0, len(t.categories))
	for _, c := range t.categories {
		names = append(names, c.Name)
	}
	return names
}

// Category looks up a category by name.
func (t *Taxonomy) Category(name string) (Category, bool) {
	i, ok := t.byCategory[name]
	if !ok {
		return Category{}, false
	}
	c := t.categories[i]
	c.Metrics = append([]Metric(nil), c.Metrics...)
	return c, true
}

// CategoryOf returns the category owning the metric. Unknown metrics report false.
func (t *Taxonomy) CategoryOf(metric string) (Category, bool) {
	ref, ok := t.byMetric[metric]
	if !ok {
		return Category{}, false
	}
	return t.Category(t.categories[ref.category].Name)
}

// Metric looks up a metric by name.
func (t *Taxonomy) Metric(name string) (Metric, bool) {
	ref, ok := t.byMetric[name]
	if !ok {
		return Metric{}, false
	}
	return t.categories[ref.category].Metrics[ref.position], true
}

// Metrics returns every metric in category order.
func (t *Taxonomy) Metrics() []Metric {
	out := make([]Metric, 0, len(t.order))
	for _, c := range t.categories {
		out = append(out, c.Metrics...)
	}
	return out
}

// MetricNames returns every metric name in category order.
func (t *Taxonomy) MetricNames() []string {
	return append([]string(nil), t.order...)
}

// Index returns the position of the metric in MetricNames, or -1.
func (t *Taxonomy) Index(metric string) int {
	ref, ok := t.byMetric[metric]
	if !ok {
		return -1
	}
	return ref.index
}

// Label returns the display label of a metric, falling back to its name.
func (t *Taxonomy) Label(metric string, short bool) string {
	m, ok := t.Metric(metric)
	if !ok {
		return metric
	}
	return m.Label(short)
}
