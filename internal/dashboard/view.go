package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/fishcap/internal/chart"
	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

var tabTitles = map[model.View]string{
	model.ViewBars:    "Bars",
	model.ViewRadar:   "Radar",
	model.ViewHeat:    "Heat",
	model.ViewCompare: "Compare",
}

// lipglossStyle colors chart output through lipgloss so it follows the
// renderer's color profile.
func lipglossStyle(color, text string) string {
	if color == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = len(m.footerLines())
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tabTitles[tab]))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tabTitles[tab]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + padLines(m.renderSummary(), m.width)
}

func (m *Model) renderSummary() string {
	a := m.assessment()
	radar := "all types"
	if !m.charts[model.ViewRadar].selection.ShowAll() {
		radar = "select categories"
	}
	line := fmt.Sprintf("Assessment: %s (%d/%d) | Sort: %s | Radar: %s",
		a.Name, m.current+1, len(m.assessments), m.sort, radar)
	return headerStyle.Render(truncateLine(line, m.width))
}

func (m *Model) renderBody(height int) string {
	if m.tabs[m.activeTab] == model.ViewCompare {
		return fitLines(tableMutedStyle.Render(m.compare.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

// pending reports whether the active chart is still animating.
func (m *Model) pending() bool {
	cs := m.activeChart()
	return cs != nil && cs.driver.Running()
}

func (m *Model) footerLines() []string {
	a := m.assessment()
	lines := []string{chart.StatsStrip(score.Summarize(m.tax, a.Scores), m.pending(), lipglossStyle)}
	if strongest, weakest, ok := score.Extremes(m.tax, a.Scores); ok {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Strongest: %s %s | Weakest: %s %s",
			m.tax.Label(strongest, m.cfg.ShortLabels), chart.FormatValue(a.Scores[strongest], m.pending()),
			m.tax.Label(weakest, m.cfg.ShortLabels), chart.FormatValue(a.Scores[weakest], m.pending()))))
	}
	if a.Recommendation != "" {
		lines = append(lines, mutedStyle.Render("Recommendation: "+a.Recommendation))
	}
	lines = append(lines, strings.Split(m.help.View(m.keys), "\n")...)
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return lines
}

func (m *Model) renderFooter() string {
	lines := m.footerLines()
	clip := lipgloss.NewStyle().MaxWidth(m.width)
	for i, line := range lines {
		if lipgloss.Width(line) > m.width {
			lines[i] = clip.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i, v := range m.tabs {
		cs, ok := m.charts[v]
		if !ok {
			continue
		}
		var content string
		switch v {
		case model.ViewBars:
			content = m.renderBars(cs, width)
		case model.ViewRadar:
			content = m.renderRadar(cs, width, bodyHeight)
		case model.ViewHeat:
			content = m.renderHeat(cs, width)
		}
		m.viewports[i].SetContent(content)
	}
}

func (m *Model) chartOptions(cs *chartState, width int) chart.Options {
	return chart.Options{
		Width:   width,
		Max:     m.maxValue(),
		Short:   m.cfg.ShortLabels,
		Pending: cs.driver.Running(),
		Style:   lipglossStyle,
	}
}

// maxValue keeps the scale stable while values animate from zero.
func (m *Model) maxValue() float64 {
	if m.cfg.MaxValue > 0 {
		return m.cfg.MaxValue
	}
	return score.ScaleMax(m.assessment().Scores, score.Ceiling)
}

func (m *Model) renderToggles(cs *chartState) string {
	parts := make([]string, 0, len(m.tax.CategoryNames()))
	for i, c := range m.tax.Categories() {
		mark := mutedStyle.Render("□")
		if cs.selection.Contains(c.Name) {
			mark = lipglossStyle(c.Color, "■")
		}
		parts = append(parts, fmt.Sprintf("[%d] %s %s", i+1, mark, c.Name))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderBars(cs *chartState, width int) string {
	order := score.Order(m.tax, m.target(cs), m.sort, cs.selection)
	lines := chart.Bars(m.tax, cs.driver.Displayed(), order, m.chartOptions(cs, width))
	return m.renderToggles(cs) + "\n\n" + strings.Join(lines, "\n")
}

func (m *Model) renderRadar(cs *chartState, width, bodyHeight int) string {
	var head string
	if cs.selection.ShowAll() {
		head = "Mode: All Types (s to select categories)"
	} else {
		head = "Mode: Select Categories (s for all types)\n" + m.renderToggles(cs)
	}
	headLines := strings.Count(head, "\n") + 2

	displayed := cs.driver.Displayed()
	metrics := cs.selection.VisibleMetrics(m.tax)
	axes := make([]chart.Axis, 0, len(metrics))
	values := make([]float64, 0, len(metrics))
	edges := make([]string, 0, len(metrics))
	for _, name := range metrics {
		color := ""
		if c, ok := m.tax.CategoryOf(name); ok {
			color = c.Color
		}
		axes = append(axes, chart.Axis{Label: m.tax.Label(name, m.cfg.ShortLabels), Color: color, Value: displayed[name]})
		values = append(values, displayed[name])
		edges = append(edges, color)
	}

	opt := m.chartOptions(cs, width)
	keyRows := (len(axes) + 1) / 2
	opt.Height = maxInt(8, bodyHeight-headLines-keyRows)
	opt.Width = minInt(width, opt.Height*2+8)
	series := []chart.RadarSeries{{Name: m.assessment().Name, Values: values, EdgeColors: edges}}
	return head + "\n\n" + strings.Join(chart.Radar(axes, series, opt), "\n")
}

func (m *Model) renderHeat(cs *chartState, width int) string {
	displayed := cs.driver.Displayed()
	visible := cs.selection.Visible(m.tax)
	lines := chart.Heat(m.tax, visible, displayed, m.chartOptions(cs, width))
	content := m.renderToggles(cs) + "\n\n" + strings.Join(lines, "\n")
	if cards := m.renderCategoryCards(cs, visible, width); cards != "" {
		content += "\n\n" + cards
	}
	return content
}

// renderCategoryCards shows animated category averages side by side when
// the terminal is wide enough, stacked otherwise.
func (m *Model) renderCategoryCards(cs *chartState, visible []taxonomy.Category, width int) string {
	if len(visible) == 0 {
		return ""
	}
	displayed := cs.driver.Displayed()
	pending := cs.driver.Running()
	cards := make([]string, 0, len(visible))
	for _, c := range visible {
		cards = append(cards, metricCard(c.Name, chart.FormatValue(score.CategoryAverage(c, displayed), pending)))
	}
	if lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, cards...)) <= width {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildCompareData(tax *taxonomy.Taxonomy, assessments []model.Assessment) ([]table.Column, []table.Row) {
	columns := []table.Column{{Title: "Assessment", Width: 16}}
	for _, name := range tax.CategoryNames() {
		columns = append(columns, table.Column{Title: name, Width: maxInt(len(name), 5)})
	}
	columns = append(columns,
		table.Column{Title: score.TotalName, Width: 5},
		table.Column{Title: "Strongest", Width: 24},
		table.Column{Title: "Weakest", Width: 24},
	)
	rows := make([]table.Row, 0, len(assessments))
	for _, a := range assessments {
		row := table.Row{a.Name}
		for _, st := range score.Summarize(tax, a.Scores) {
			row = append(row, chart.FormatValue(st.Average, false))
		}
		strongest, weakest, _ := score.Extremes(tax, a.Scores)
		row = append(row, tax.Label(strongest, true), tax.Label(weakest, true))
		rows = append(rows, row)
	}
	return columns, rows
}

func compareTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
