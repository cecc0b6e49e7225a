package score

import (
	"math"
	"testing"

	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRound1HalfUp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{3.5666, 3.6},
		{2.5, 2.5},
		{2.25, 2.3},
		{4.0, 4.0},
		{0, 0},
		{3.04, 3.0},
		{(0.7 + 0.6) / 2, 0.7},
		{3.25, 3.3},
	}
	for _, tc := range cases {
		if got := Round1(tc.in); !approx(got, tc.want) {
			t.Fatalf("Round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCategoryAverageTwoMetrics(t *testing.T) {
	c := taxonomy.Category{Name: "C", Metrics: []taxonomy.Metric{{Name: "A"}, {Name: "B"}}}
	got := CategoryAverage(c, ScoreSet{"A": 4.2, "B": 3.8})
	if !approx(got, 4.0) {
		t.Fatalf("expected 4.0, got %v", got)
	}
}

func TestCategoryAverageMissingCountsAsZero(t *testing.T) {
	c := taxonomy.Category{Name: "C", Metrics: []taxonomy.Metric{{Name: "X"}, {Name: "Y"}}}
	got := CategoryAverage(c, ScoreSet{"Y": 5})
	if !approx(got, 2.5) {
		t.Fatalf("expected 2.5, got %v", got)
	}
}

func TestCategoryAverageEmptyCategory(t *testing.T) {
	if got := CategoryAverage(taxonomy.Category{Name: "E"}, ScoreSet{"A": 5}); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestCategoryAverageWithinBounds(t *testing.T) {
	tax := taxonomy.Default()
	set := ScoreSet{}
	for i, name := range tax.MetricNames() {
		set[name] = float64(i%6) * 0.9
	}
	for _, c := range tax.Categories() {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, m := range c.Metrics {
			lo = math.Min(lo, set[m.Name])
			hi = math.Max(hi, set[m.Name])
		}
		avg := CategoryAverage(c, set)
		if avg < Round1(lo) || avg > Round1(hi) {
			t.Fatalf("%s average %v outside [%v, %v]", c.Name, avg, lo, hi)
		}
	}
}

func TestOverallAverage(t *testing.T) {
	if got := OverallAverage(ScoreSet{"a": 4.2, "b": 3.8, "c": 2.7}); !approx(got, 3.6) {
		t.Fatalf("expected 3.6, got %v", got)
	}
	if got := OverallAverage(ScoreSet{}); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
	if got := OverallAverage(nil); got != 0 {
		t.Fatalf("expected 0 for nil set, got %v", got)
	}
}

func TestOverallAverageStableAtHalfBoundary(t *testing.T) {
	values := []float64{1.4, 0.3, 3.9, 4.5, 4.7, 1.3, 3.8, 1.9, 2.9, 4.9, 4.9, 4.5}
	set := ScoreSet{}
	for i, m := range taxonomy.Default().MetricNames() {
		set[m] = values[i]
	}
	for i := 0; i < 200; i++ {
		if got := OverallAverage(set); !approx(got, 3.3) {
			t.Fatalf("call %d: expected 3.3, got %v", i, got)
		}
	}
}

func TestCategoryAverageHalfBoundary(t *testing.T) {
	c := taxonomy.Category{Name: "C", Metrics: []taxonomy.Metric{{Name: "A"}, {Name: "B"}}}
	if got := CategoryAverage(c, ScoreSet{"A": 0.7, "B": 0.6}); !approx(got, 0.7) {
		t.Fatalf("expected 0.7, got %v", got)
	}
}

func TestOverallAverageIsNotMeanOfCategoryMeans(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Category{
		{Name: "One", Metrics: []taxonomy.Metric{{Name: "a"}}},
		{Name: "Two", Metrics: []taxonomy.Metric{{Name: "b"}, {Name: "c"}, {Name: "d"}}},
	})
	if err != nil {
		t.Fatalf("new taxonomy: %v", err)
	}
	set := ScoreSet{"a": 5, "b": 1, "c": 1, "d": 1}
	stats := Summarize(tax, set)
	if len(stats) != 3 || stats[2].Name != TotalName {
		t.Fatalf("unexpected summary: %+v", stats)
	}
	if !approx(stats[2].Average, 2.0) {
		t.Fatalf("expected total 2.0, got %v", stats[2].Average)
	}
}

func TestSummarizeDefault(t *testing.T) {
	tax := taxonomy.Default()
	names := tax.MetricNames()
	values := []float64{4.2, 3.8, 2.7, 4.5, 3.9, 3.2, 4.7, 3.8, 2.9, 4.3, 3.6, 3.1}
	set := ScoreSet{}
	for i, n := range names {
		set[n] = values[i]
	}
	stats := Summarize(tax, set)
	want := map[string]float64{
		taxonomy.Financial:    3.6,
		taxonomy.Intellectual: 3.9,
		taxonomy.Social:       3.8,
		taxonomy.Human:        3.7,
	}
	for _, st := range stats[:4] {
		if !approx(st.Average, want[st.Name]) {
			t.Fatalf("%s: expected %v, got %v", st.Name, want[st.Name], st.Average)
		}
		if st.Color == "" {
			t.Fatalf("%s: expected a color", st.Name)
		}
	}
}

func TestCategoryScoresUnrounded(t *testing.T) {
	tax := taxonomy.Default()
	set := ScoreSet{"Liquidity & Cash Flow": 1, "Debt Management": 1, "Funding Flexibility": 2}
	got := CategoryScores(tax, set)
	if !approx(got[taxonomy.Financial], 4.0/3.0) {
		t.Fatalf("expected 1.333.., got %v", got[taxonomy.Financial])
	}
	if got[taxonomy.Human] != 0 {
		t.Fatalf("expected 0 for missing category data, got %v", got[taxonomy.Human])
	}
}

func TestScaleMax(t *testing.T) {
	if got := ScaleMax(ScoreSet{"a": 3}, Ceiling); got != 5 {
		t.Fatalf("expected ceiling 5, got %v", got)
	}
	if got := ScaleMax(ScoreSet{"a": 7.5}, Ceiling); got != 7.5 {
		t.Fatalf("expected 7.5, got %v", got)
	}
}

func TestExtremes(t *testing.T) {
	tax := taxonomy.Default()
	set := ScoreSet{"Debt Management": 4, "Adaptability": 1, "Market Insights": 4}
	hi, lo, ok := Extremes(tax, set)
	if !ok || hi != "Debt Management" || lo != "Adaptability" {
		t.Fatalf("unexpected extremes: %q %q %v", hi, lo, ok)
	}
	if _, _, ok := Extremes(tax, ScoreSet{}); ok {
		t.Fatalf("expected no extremes for empty set")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := ScoreSet{"a": 1}
	c := s.Clone()
	c["a"] = 2
	if s["a"] != 1 {
		t.Fatalf("clone shares storage")
	}
}
