package generator

import (
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// Names of the built-in assessments.
const (
	TeamSample     = "Team"
	BusinessSample = "Business A"
)

// PlaceholderRecommendation stands in until recommendations exist.
const PlaceholderRecommendation = "The is recommended data. Coming Soom..."

var (
	teamValues     = []float64{4.2, 3.8, 2.7, 4.5, 3.9, 3.2, 4.7, 3.8, 2.9, 4.3, 3.6, 3.1}
	businessValues = []float64{3, 4, 5, 4, 3, 2, 1, 5, 3, 4, 4, 3}
)

// Samples returns the built-in assessments for the taxonomy's metric order.
func Samples(t *taxonomy.Taxonomy) []model.Assessment {
	return []model.Assessment{
		{Name: TeamSample, Subject: "team", Scores: zipScores(t, teamValues)},
		{Name: BusinessSample, Subject: "business", Recommendation: PlaceholderRecommendation, Scores: zipScores(t, businessValues)},
	}
}

func zipScores(t *taxonomy.Taxonomy, values []float64) score.ScoreSet {
	set := score.ScoreSet{}
	for i, name := range t.MetricNames() {
		if i >= len(values) {
			break
		}
		set[name] = values[i]
	}
	return set
}
