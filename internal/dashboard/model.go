// Package dashboard provides the Bubble Tea score dashboard.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/fishcap/internal/anim"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// ErrNoAssessments is returned when there is nothing to display.
var ErrNoAssessments = errors.New("no assessments to display")

// frameMsg asks the chart of view to advance run to at.
type frameMsg struct {
	view model.View
	run  anim.Run
	at   time.Time
}

// resizeSettledMsg fires once the terminal size has been stable for the debounce delay.
type resizeSettledMsg struct {
	token uint64
}

// chartState is the animation and category selection owned by one chart.
type chartState struct {
	view      model.View
	driver    *anim.Driver
	selection *score.Selection
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	tax    *taxonomy.Taxonomy
	cfg    model.DashboardConfig
	logger *zap.Logger
	clock  anim.Clock

	assessments []model.Assessment
	current     int
	sort        score.SortMode

	charts   map[model.View]*chartState
	debounce *anim.Debouncer

	tabs      []model.View
	activeTab int
	viewports []viewport.Model
	compare   table.Model
	keys      keyMap
	help      help.Model

	width  int
	height int
	errMsg string
}

// NewModel constructs a dashboard over assessments. cfg.Assessment picks the
// assessment shown first; empty means the first one.
func NewModel(tax *taxonomy.Taxonomy, assessments []model.Assessment, cfg model.DashboardConfig, logger *zap.Logger) (*Model, error) {
	if len(assessments) == 0 {
		return nil, ErrNoAssessments
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Duration <= 0 {
		cfg.Duration = anim.DefaultDuration
	}
	if cfg.ResizeDebounce <= 0 {
		cfg.ResizeDebounce = anim.DefaultResizeDebounce
	}
	if cfg.Sort == "" {
		cfg.Sort = score.SortCategory
	}
	barEase, err := easing(cfg.BarEasing, anim.EaseCubicOut)
	if err != nil {
		return nil, fmt.Errorf("bar easing: %w", err)
	}
	radarEase, err := easing(cfg.RadarEasing, anim.EaseBezier)
	if err != nil {
		return nil, fmt.Errorf("radar easing: %w", err)
	}

	current := 0
	if cfg.Assessment != "" {
		current = -1
		for i, a := range assessments {
			if a.Name == cfg.Assessment {
				current = i
				break
			}
		}
		if current < 0 {
			return nil, fmt.Errorf("assessment %q not found", cfg.Assessment)
		}
	}

	m := &Model{
		tax:         tax,
		cfg:         cfg,
		logger:      logger,
		clock:       time.Now,
		assessments: assessments,
		current:     current,
		sort:        cfg.Sort,
		debounce:    anim.NewDebouncer(cfg.ResizeDebounce),
		tabs:        model.Views,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	names := tax.CategoryNames()
	radarSel := score.NewSelection(names...)
	radarSel.SetShowAll(true)
	m.charts = map[model.View]*chartState{
		model.ViewBars:  {view: model.ViewBars, driver: anim.NewDriver(cfg.Duration, barEase), selection: score.NewSelection(names...)},
		model.ViewRadar: {view: model.ViewRadar, driver: anim.NewDriver(cfg.Duration, radarEase), selection: radarSel},
		model.ViewHeat:  {view: model.ViewHeat, driver: anim.NewDriver(cfg.Duration, barEase), selection: score.NewSelection(names...)},
	}
	for i, v := range m.tabs {
		if v == cfg.View {
			m.activeTab = i
		}
	}
	m.initViewports()
	m.initCompareTable()
	return m, nil
}

func easing(name, fallback string) (anim.Easing, error) {
	if name == "" {
		name = fallback
	}
	return anim.EasingByName(name)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.replayAll()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		initial := m.width == 0 && m.height == 0
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		if initial {
			return m, nil
		}
		token := m.debounce.Trigger()
		return m, tea.Tick(m.debounce.Delay, func(time.Time) tea.Msg {
			return resizeSettledMsg{token: token}
		})
	case resizeSettledMsg:
		if !m.debounce.Settled(msg.token) {
			return m, nil
		}
		m.logger.Debug("resize settled, replaying charts", zap.Int("width", m.width), zap.Int("height", m.height))
		return m, m.replayAll()
	case frameMsg:
		return m, m.advance(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		for _, cs := range m.charts {
			cs.driver.Cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.SortCategory):
		m.setSort(score.SortCategory)
		return m, nil
	case key.Matches(msg, m.keys.SortDesc):
		m.setSort(score.SortValueDesc)
		return m, nil
	case key.Matches(msg, m.keys.SortAsc):
		m.setSort(score.SortValueAsc)
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCategory(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.SelectAll):
		cs := m.activeChart()
		if cs == nil {
			return m, nil
		}
		cs.selection.SelectAll(m.tax)
		return m, m.restart(cs)
	case key.Matches(msg, m.keys.RadarMode):
		cs := m.charts[model.ViewRadar]
		cs.selection.SetShowAll(!cs.selection.ShowAll())
		return m, m.restart(cs)
	case key.Matches(msg, m.keys.Replay):
		if cs := m.activeChart(); cs != nil {
			return m, m.restart(cs)
		}
		return m, m.replayAll()
	case key.Matches(msg, m.keys.Skip):
		if cs := m.activeChart(); cs != nil {
			cs.driver.Settle(m.target(cs))
			m.renderTabContents()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevAssessment):
		return m, m.selectAssessment(m.current - 1)
	case key.Matches(msg, m.keys.NextAssessment):
		return m, m.selectAssessment(m.current + 1)
	case key.Matches(msg, m.keys.Open):
		if m.tabs[m.activeTab] != model.ViewCompare {
			return m, nil
		}
		cmd := m.selectAssessment(m.compare.Cursor())
		m.activeTab = 0
		m.compare.Blur()
		return m, tea.Batch(cmd, tea.ClearScreen)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil
	}

	if m.tabs[m.activeTab] == model.ViewCompare {
		var cmd tea.Cmd
		m.compare, cmd = m.compare.Update(msg)
		return m, cmd
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

func (m *Model) activeChart() *chartState {
	return m.charts[m.tabs[m.activeTab]]
}

func (m *Model) assessment() model.Assessment {
	return m.assessments[m.current]
}

// target is what the chart animates toward: the visible metrics of the
// current assessment.
func (m *Model) target(cs *chartState) score.ScoreSet {
	return cs.selection.Filter(m.tax, m.assessment().Scores)
}

func (m *Model) frameCmd(view model.View, run anim.Run) tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg{view: view, run: run, at: t}
	})
}

func (m *Model) restart(cs *chartState) tea.Cmd {
	run := cs.driver.Start(m.target(cs), m.clock())
	m.logger.Debug("animation started",
		zap.String("view", string(cs.view)),
		zap.Uint64("run", uint64(run)),
		zap.String("assessment", m.assessment().Name),
	)
	m.renderTabContents()
	return m.frameCmd(cs.view, run)
}

func (m *Model) replayAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.charts))
	for _, v := range m.tabs {
		if cs, ok := m.charts[v]; ok {
			cmds = append(cmds, m.restart(cs))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) advance(msg frameMsg) tea.Cmd {
	cs, ok := m.charts[msg.view]
	if !ok {
		return nil
	}
	sample, ok := cs.driver.Frame(msg.run, msg.at)
	if !ok {
		return nil
	}
	m.renderTabContents()
	if sample.Done {
		m.logger.Debug("animation finished", zap.String("view", string(msg.view)), zap.Uint64("run", uint64(msg.run)))
		return nil
	}
	return m.frameCmd(msg.view, msg.run)
}

func (m *Model) toggleCategory(idx int) tea.Cmd {
	cs := m.activeChart()
	names := m.tax.CategoryNames()
	if cs == nil || idx < 0 || idx >= len(names) {
		return nil
	}
	if cs.selection.ShowAll() {
		cs.selection.SetShowAll(false)
	}
	cs.selection.Toggle(names[idx])
	return m.restart(cs)
}

// setSort reorders the bars without restarting their animation.
func (m *Model) setSort(mode score.SortMode) {
	m.sort = mode
	m.renderTabContents()
}

func (m *Model) selectAssessment(idx int) tea.Cmd {
	n := len(m.assessments)
	idx = ((idx % n) + n) % n
	if idx == m.current {
		return nil
	}
	m.current = idx
	m.logger.Info("assessment selected", zap.String("assessment", m.assessment().Name))
	return m.replayAll()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.tabs[m.activeTab] == model.ViewCompare {
		m.compare.Focus()
	} else {
		m.compare.Blur()
	}
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initCompareTable() {
	cols, rows := buildCompareData(m.tax, m.assessments)
	m.compare = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	m.compare.SetStyles(compareTableStyles())
	m.compare.SetCursor(m.current)
	if m.tabs[m.activeTab] == model.ViewCompare {
		m.compare.Focus()
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.help.Width = m.width
	m.compare.SetWidth(m.width)
	m.compare.SetHeight(maxInt(1, bodyHeight-1))
}
