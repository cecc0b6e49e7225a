package dashboard

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/fishcap/internal/anim"
	"github.com/verte-zerg/fishcap/internal/generator"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

var testStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	tax := taxonomy.Default()
	m, err := NewModel(tax, generator.Samples(tax), model.DashboardConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.clock = func() time.Time { return testStart }
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected init to schedule frames")
	}
	return m
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelErrors(t *testing.T) {
	tax := taxonomy.Default()
	if _, err := NewModel(tax, nil, model.DashboardConfig{}, nil); !errors.Is(err, ErrNoAssessments) {
		t.Fatalf("expected ErrNoAssessments, got %v", err)
	}
	if _, err := NewModel(tax, generator.Samples(tax), model.DashboardConfig{Assessment: "Nope"}, nil); err == nil {
		t.Fatalf("expected unknown assessment error")
	}
	if _, err := NewModel(tax, generator.Samples(tax), model.DashboardConfig{BarEasing: "bounce"}, nil); err == nil {
		t.Fatalf("expected unknown easing error")
	}
}

func TestNewModelPicksAssessmentAndView(t *testing.T) {
	tax := taxonomy.Default()
	cfg := model.DashboardConfig{Assessment: generator.BusinessSample, View: model.ViewRadar}
	m, err := NewModel(tax, generator.Samples(tax), cfg, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.assessment().Name != generator.BusinessSample {
		t.Fatalf("expected %s, got %s", generator.BusinessSample, m.assessment().Name)
	}
	if m.tabs[m.activeTab] != model.ViewRadar {
		t.Fatalf("expected radar tab, got %s", m.tabs[m.activeTab])
	}
}

func TestFramesAdvanceToTarget(t *testing.T) {
	m := newTestModel(t)
	cs := m.charts[model.ViewBars]
	run := cs.driver.Run()

	_, cmd := m.Update(frameMsg{view: model.ViewBars, run: run, at: testStart.Add(750 * time.Millisecond)})
	if cmd == nil {
		t.Fatalf("expected another frame mid-run")
	}
	got := cs.driver.Displayed()["Liquidity & Cash Flow"]
	if math.Abs(got-4.2*0.875) > 1e-9 {
		t.Fatalf("expected eased halfway value, got %v", got)
	}

	_, cmd = m.Update(frameMsg{view: model.ViewBars, run: run, at: testStart.Add(anim.DefaultDuration)})
	if cmd != nil {
		t.Fatalf("expected no frame after completion")
	}
	if got := cs.driver.Displayed()["Liquidity & Cash Flow"]; got != 4.2 {
		t.Fatalf("expected exact target, got %v", got)
	}
}

func TestToggleRestartsAndDropsStaleFrames(t *testing.T) {
	m := newTestModel(t)
	cs := m.charts[model.ViewBars]
	old := cs.driver.Run()

	_, cmd := m.Update(keyPress("2"))
	if cmd == nil {
		t.Fatalf("expected toggle to schedule frames")
	}
	if cs.driver.Run() == old {
		t.Fatalf("expected a new run after toggle")
	}
	if cs.selection.Contains(taxonomy.Intellectual) {
		t.Fatalf("expected intellectual to be hidden")
	}
	if _, cmd := m.Update(frameMsg{view: model.ViewBars, run: old, at: testStart.Add(time.Second)}); cmd != nil {
		t.Fatalf("stale frame must not schedule more frames")
	}

	intellectual, _ := m.tax.Category(taxonomy.Intellectual)
	m.Update(frameMsg{view: model.ViewBars, run: cs.driver.Run(), at: testStart.Add(anim.DefaultDuration)})
	if _, ok := cs.driver.Displayed()[intellectual.Metrics[0].Name]; ok {
		t.Fatalf("hidden category must not be animated")
	}
}

func TestSortKeepsAnimation(t *testing.T) {
	m := newTestModel(t)
	run := m.charts[model.ViewBars].driver.Run()
	m.Update(keyPress("d"))
	if m.sort != "value-desc" {
		t.Fatalf("expected value-desc, got %s", m.sort)
	}
	if m.charts[model.ViewBars].driver.Run() != run {
		t.Fatalf("sorting must not restart the animation")
	}
}

func TestChartsOwnSelections(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyPress("1"))
	if m.charts[model.ViewBars].selection.Contains(taxonomy.Financial) {
		t.Fatalf("expected financial hidden in bars")
	}
	if !m.charts[model.ViewHeat].selection.Contains(taxonomy.Financial) {
		t.Fatalf("heat selection must be unaffected")
	}
}

func TestRadarToggleLeavesShowAll(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	radar := m.charts[model.ViewRadar]
	if !radar.selection.ShowAll() {
		t.Fatalf("radar starts showing all types")
	}
	m.Update(keyPress("1"))
	if radar.selection.ShowAll() {
		t.Fatalf("expected select mode after toggling a category")
	}
	if radar.selection.Contains(taxonomy.Financial) {
		t.Fatalf("expected financial deselected")
	}
	m.Update(keyPress("s"))
	if !radar.selection.ShowAll() || !radar.selection.Contains(taxonomy.Financial) {
		t.Fatalf("expected all types after switching mode")
	}
}

func TestResizeIsDebounced(t *testing.T) {
	m := newTestModel(t)
	cs := m.charts[model.ViewBars]
	run := cs.driver.Run()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	if _, cmd := m.Update(resizeSettledMsg{token: 1}); cmd != nil {
		t.Fatalf("superseded resize must not replay")
	}
	if cs.driver.Run() != run {
		t.Fatalf("unexpected restart")
	}
	if _, cmd := m.Update(resizeSettledMsg{token: 2}); cmd == nil {
		t.Fatalf("expected replay after the last resize")
	}
	if cs.driver.Run() != run+1 {
		t.Fatalf("expected one restart, run went from %d to %d", run, cs.driver.Run())
	}
}

func TestViewHidesNumbersWhileAnimating(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, "Financial ...") {
		t.Fatalf("expected pending stats while animating")
	}
	if !strings.Contains(view, "Assessment: Team (1/2)") {
		t.Fatalf("expected assessment summary in header")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	view = m.View()
	if !strings.Contains(view, "Financial 3.6") || !strings.Contains(view, "Total 3.7") {
		t.Fatalf("expected final stats after skipping")
	}
	if !strings.Contains(view, "4.2") {
		t.Fatalf("expected settled bar values")
	}
}

func TestSwitchAssessmentRestartsAll(t *testing.T) {
	m := newTestModel(t)
	runs := map[model.View]anim.Run{}
	for v, cs := range m.charts {
		runs[v] = cs.driver.Run()
	}
	m.Update(keyPress("]"))
	if m.assessment().Name != generator.BusinessSample {
		t.Fatalf("expected business sample, got %s", m.assessment().Name)
	}
	for v, cs := range m.charts {
		if cs.driver.Run() == runs[v] {
			t.Fatalf("expected %s to restart", v)
		}
	}
	m.Update(keyPress("]"))
	if m.assessment().Name != generator.TeamSample {
		t.Fatalf("expected wrap to team sample, got %s", m.assessment().Name)
	}
}

func TestCompareEnterOpensAssessment(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.tabs[m.activeTab] != model.ViewCompare {
		t.Fatalf("expected compare tab, got %s", m.tabs[m.activeTab])
	}
	if !strings.Contains(m.View(), generator.BusinessSample) {
		t.Fatalf("expected compare table rows")
	}
	m.compare.SetCursor(1)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != 1 || m.activeTab != 0 {
		t.Fatalf("expected business sample on bars tab, got %d/%d", m.current, m.activeTab)
	}
}

func TestQuitCancelsAnimations(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	for v, cs := range m.charts {
		if cs.driver.Status() != anim.Cancelled {
			t.Fatalf("expected %s cancelled, got %s", v, cs.driver.Status())
		}
	}
}
