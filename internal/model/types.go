// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/fishcap/internal/score"
)

// View names a dashboard tab.
type View string

// Dashboard views.
const (
	ViewBars    View = "bars"
	ViewRadar   View = "radar"
	ViewHeat    View = "heat"
	ViewCompare View = "compare"
)

// Views lists the dashboard tabs in display order.
var Views = []View{ViewBars, ViewRadar, ViewHeat, ViewCompare}

// Assessment is a named set of metric scores.
type Assessment struct {
	ID             int64
	Name           string
	Subject        string
	Recommendation string
	CreatedAt      time.Time
	Scores         score.ScoreSet
}

// DashboardConfig defines dashboard settings.
type DashboardConfig struct {
	Assessment     string
	View           View
	Sort           score.SortMode
	MaxValue       float64
	Duration       time.Duration
	FPS            int
	BarEasing      string
	RadarEasing    string
	ResizeDebounce time.Duration
	ShortLabels    bool
}

// FrameInterval returns the delay between animation frames.
func (c DashboardConfig) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// ExportConfig defines HTML export settings.
type ExportConfig struct {
	Assessment string
	Compare    []string
	Out        string
	Open       bool
	Title      string
	MaxValue   float64
}
