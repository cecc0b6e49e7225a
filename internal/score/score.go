// Package score aggregates metric scores into category and overall averages.
//
// Missing metrics count as zero when averaging a category. Averages are
// rounded half-up to one decimal.
package score

import (
	"math"
	"sort"

	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// Ceiling is the nominal maximum of the 0..5 score scale.
const Ceiling = 5.0

// TotalName labels the overall average in summaries.
const TotalName = "Total"

// ScoreSet maps metric names to values.
type ScoreSet map[string]float64

// Clone returns an independent copy of the set.
func (s ScoreSet) Clone() ScoreSet {
	out := make(ScoreSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Value returns the metric value, 0 when the metric is absent.
func (s ScoreSet) Value(metric string) (float64, bool) {
	v, ok := s[metric]
	return v, ok
}

// roundSlack absorbs representation error at .x5 boundaries.
const roundSlack = 1e-9

// Round1 rounds half-up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5+roundSlack) / 10
}

// CategoryAverage returns the rounded mean of the category's metrics.
// Missing metrics count as 0; an empty category yields 0.
func CategoryAverage(c taxonomy.Category, s ScoreSet) float64 {
	if len(c.Metrics) == 0 {
		return 0
	}
	return Round1(categoryMean(c, s))
}

// OverallAverage returns the rounded mean over every entry of the set.
// It is not the mean of category means. An empty set yields 0.
func OverallAverage(s ScoreSet) float64 {
	if len(s) == 0 {
		return 0
	}
	// Sum in key order so the result does not depend on map iteration.
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sum := 0.0
	for _, k := range keys {
		sum += s[k]
	}
	return Round1(sum / float64(len(s)))
}

func categoryMean(c taxonomy.Category, s ScoreSet) float64 {
	sum := 0.0
	for _, m := range c.Metrics {
		sum += s[m.Name]
	}
	return sum / float64(len(c.Metrics))
}

// CategoryStat is one entry of the statistics strip.
type CategoryStat struct {
	Name    string
	Color   string
	Average float64
}

// Summarize returns per-category averages in taxonomy order followed by the total.
func Summarize(t *taxonomy.Taxonomy, s ScoreSet) []CategoryStat {
	cats := t.Categories()
	out := make([]CategoryStat, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, CategoryStat{Name: c.Name, Color: c.Color, Average: CategoryAverage(c, s)})
	}
	out = append(out, CategoryStat{Name: TotalName, Average: OverallAverage(s)})
	return out
}

// CategoryScores returns the unrounded mean per category keyed by category name.
func CategoryScores(t *taxonomy.Taxonomy, s ScoreSet) ScoreSet {
	out := ScoreSet{}
	for _, c := range t.Categories() {
		if len(c.Metrics) == 0 {
			out[c.Name] = 0
			continue
		}
		out[c.Name] = categoryMean(c, s)
	}
	return out
}

// ScaleMax returns the largest value in the set, never below ceiling.
func ScaleMax(s ScoreSet, ceiling float64) float64 {
	maxValue := ceiling
	for _, v := range s {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}

// Extremes reports the strongest and weakest present metric.
// Ties resolve to the metric that comes first in taxonomy order.
func Extremes(t *taxonomy.Taxonomy, s ScoreSet) (strongest, weakest string, ok bool) {
	var hi, lo float64
	for _, name := range t.MetricNames() {
		v, present := s[name]
		if !present {
			continue
		}
		if !ok {
			strongest, weakest, hi, lo, ok = name, name, v, v, true
			continue
		}
		if v > hi {
			strongest, hi = name, v
		}
		if v < lo {
			weakest, lo = name, v
		}
	}
	return strongest, weakest, ok
}
