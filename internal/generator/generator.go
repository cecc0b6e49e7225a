// Package generator builds sample assessments.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// DefaultSeed reproduces the reference tool comparison.
const DefaultSeed = 42

// Score range of generated tool assessments.
const (
	MinScore = 1
	MaxScore = 5
)

// Generator produces randomized tool assessments.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Scores draws an integer score in [MinScore, MaxScore] for every metric.
func (g *Generator) Scores(t *taxonomy.Taxonomy) score.ScoreSet {
	set := score.ScoreSet{}
	for _, name := range t.MetricNames() {
		set[name] = float64(MinScore + g.rnd.Intn(MaxScore-MinScore+1))
	}
	return set
}

// Tools returns count assessments named "Tool A", "Tool B", and so on.
func (g *Generator) Tools(t *taxonomy.Taxonomy, count int) []model.Assessment {
	result := make([]model.Assessment, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, model.Assessment{
			Name:    ToolName(i),
			Subject: "tool",
			Scores:  g.Scores(t),
		})
	}
	return result
}

// ToolName returns the letter-suffixed tool name for index i.
func ToolName(i int) string {
	if i < 26 {
		return fmt.Sprintf("Tool %c", rune('A'+i))
	}
	return fmt.Sprintf("Tool %d", i+1)
}
