package score

import (
	"testing"

	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

func businessA(t *testing.T) (*taxonomy.Taxonomy, ScoreSet) {
	t.Helper()
	tax := taxonomy.Default()
	values := []float64{3, 4, 5, 4, 3, 2, 1, 5, 3, 4, 4, 3}
	set := ScoreSet{}
	for i, n := range tax.MetricNames() {
		set[n] = values[i]
	}
	return tax, set
}

func TestOrderCategory(t *testing.T) {
	tax, set := businessA(t)
	got := Order(tax, set, SortCategory, nil)
	want := []string{"Funding Flexibility", "Debt Management", "Liquidity & Cash Flow"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("position %d: expected %q, got %q", i, w, got[i])
		}
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 metrics, got %d", len(got))
	}
}

func TestOrderByValue(t *testing.T) {
	tax, set := businessA(t)
	desc := Order(tax, set, SortValueDesc, nil)
	if desc[0] != "Funding Flexibility" || desc[1] != "Reputation & Trust" || desc[11] != "Networking & Partnerships" {
		t.Fatalf("unexpected descending order: %v", desc)
	}
	asc := Order(tax, set, SortValueAsc, nil)
	if asc[0] != "Networking & Partnerships" || asc[1] != "Adaptability" || asc[11] != "Reputation & Trust" {
		t.Fatalf("unexpected ascending order: %v", asc)
	}
}

func TestOrderRespectsSelection(t *testing.T) {
	tax, set := businessA(t)
	sel := NewSelection(taxonomy.Social)
	got := Order(tax, set, SortValueDesc, sel)
	want := []string{"Reputation & Trust", "Influence & Engagement", "Networking & Partnerships"}
	if len(got) != len(want) {
		t.Fatalf("expected %d metrics, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseSortMode(t *testing.T) {
	if m, err := ParseSortMode("value-asc"); err != nil || m != SortValueAsc {
		t.Fatalf("unexpected result: %v %v", m, err)
	}
	if _, err := ParseSortMode("random"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestZeroSelection(t *testing.T) {
	var sel Selection
	if sel.Contains(taxonomy.Social) {
		t.Fatalf("zero selection should show nothing")
	}
	if !sel.Toggle(taxonomy.Social) || !sel.Contains(taxonomy.Social) {
		t.Fatalf("expected Social to be selected after toggle")
	}
	var all Selection
	all.SelectAll(taxonomy.Default())
	if len(all.Visible(taxonomy.Default())) != 4 {
		t.Fatalf("expected all categories after SelectAll")
	}
}

func TestSelectionAddIsIdempotent(t *testing.T) {
	sel := NewSelection()
	sel.Add(taxonomy.Financial)
	sel.Add(taxonomy.Financial)
	if !sel.Contains(taxonomy.Financial) {
		t.Fatalf("repeated Add must keep Financial selected")
	}
}

func TestSelection(t *testing.T) {
	tax := taxonomy.Default()
	sel := NewSelection(tax.CategoryNames()...)
	if sel.Toggle(taxonomy.Human) {
		t.Fatalf("expected Human to be deselected")
	}
	if sel.Contains(taxonomy.Human) {
		t.Fatalf("Human should not be visible")
	}
	if got := len(sel.VisibleMetrics(tax)); got != 9 {
		t.Fatalf("expected 9 visible metrics, got %d", got)
	}

	sel.SetShowAll(true)
	if !sel.Contains(taxonomy.Human) || sel.Selected(taxonomy.Human) {
		t.Fatalf("show-all should bypass selection without changing it")
	}
	sel.SetShowAll(false)

	sel.SelectAll(tax)
	if len(sel.Visible(tax)) != 4 {
		t.Fatalf("expected all categories after SelectAll")
	}

	filtered := NewSelection(taxonomy.Financial).Filter(tax, ScoreSet{"Debt Management": 2, "Adaptability": 3})
	if len(filtered) != 1 || filtered["Debt Management"] != 2 {
		t.Fatalf("unexpected filtered set: %v", filtered)
	}
}
