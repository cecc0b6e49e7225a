package taxonomy

import (
	"errors"
	"testing"
)

func TestDefaultHasTwelveMetricsInFourCategories(t *testing.T) {
	tax := Default()
	if got := tax.CategoryNames(); len(got) != 4 || got[0] != Financial || got[3] != Human {
		t.Fatalf("unexpected categories: %v", got)
	}
	names := tax.MetricNames()
	if len(names) != 12 {
		t.Fatalf("expected 12 metrics, got %d", len(names))
	}
	for _, c := range tax.Categories() {
		if len(c.Metrics) != 3 {
			t.Fatalf("category %s has %d metrics", c.Name, len(c.Metrics))
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tax := Default()
	c, ok := tax.CategoryOf("Reputation & Trust")
	if !ok || c.Name != Social {
		t.Fatalf("expected Social, got %q ok=%v", c.Name, ok)
	}
	if _, ok := tax.CategoryOf("Unknown Metric"); ok {
		t.Fatalf("expected unknown metric to report false")
	}
}

func TestLabels(t *testing.T) {
	tax := Default()
	cases := []struct {
		metric string
		short  bool
		want   string
	}{
		{"Capacity for Growth & Talent Pipeline", false, "Capacity for Growth"},
		{"Capacity for Growth & Talent Pipeline", true, "Growth Cap"},
		{"Debt Management", false, "Debt Management"},
		{"Debt Management", true, "Debt Mgmt"},
		{"Not A Metric", true, "Not A Metric"},
	}
	for _, tc := range cases {
		if got := tax.Label(tc.metric, tc.short); got != tc.want {
			t.Fatalf("Label(%q, %v) = %q, want %q", tc.metric, tc.short, got, tc.want)
		}
	}
}

func TestIndexFollowsCategoryOrder(t *testing.T) {
	tax := Default()
	if got := tax.Index("Liquidity & Cash Flow"); got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
	if got := tax.Index("Capacity for Growth & Talent Pipeline"); got != 11 {
		t.Fatalf("expected index 11, got %d", got)
	}
	if got := tax.Index("nope"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestNewRejectsOverlap(t *testing.T) {
	_, err := New([]Category{
		{Name: "A", Metrics: []Metric{{Name: "x"}}},
		{Name: "B", Metrics: []Metric{{Name: "x"}}},
	})
	if !errors.Is(err, ErrDuplicateMetric) {
		t.Fatalf("expected ErrDuplicateMetric, got %v", err)
	}

	_, err = New([]Category{{Name: "A"}, {Name: "A"}})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}

	_, err = New([]Category{{Name: " "}})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestNewAllowsEmptyCategory(t *testing.T) {
	tax, err := New([]Category{{Name: "Empty"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := tax.Category("Empty")
	if !ok || len(c.Metrics) != 0 {
		t.Fatalf("expected empty category, got %+v", c)
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	tax := Default()
	cats := tax.Categories()
	cats[0].Metrics[0].Name = "mutated"
	if tax.MetricNames()[0] != "Liquidity & Cash Flow" {
		t.Fatalf("taxonomy mutated through returned slice")
	}
}
