// Package export renders assessments to a standalone HTML report.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cli/browser"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/verte-zerg/fishcap/internal/model"
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// DefaultTitle is used when a report has no title.
const DefaultTitle = "FISH Capital Scores"

const (
	chartWidth  = "900px"
	chartHeight = "560px"
	theme       = "macarons"
)

// Report describes what goes into an exported page.
type Report struct {
	Title    string
	MaxValue float64
	Primary  model.Assessment
	// Compare adds a category radar across these assessments. Primary is
	// included automatically.
	Compare []model.Assessment
}

func (r Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return DefaultTitle
}

func (r Report) maxValue() float32 {
	if r.MaxValue > 0 {
		return float32(r.MaxValue)
	}
	return float32(score.ScaleMax(r.Primary.Scores, score.Ceiling))
}

// Page assembles every chart of the report.
func Page(t *taxonomy.Taxonomy, r Report) *components.Page {
	page := components.NewPage()
	page.PageTitle = r.title()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		metricRadar(t, r),
		metricBars(t, r),
		categoryBars(t, r),
	)
	if len(r.Compare) > 0 {
		page.AddCharts(compareRadar(t, r))
	}
	return page
}

// Render writes the report as HTML.
func Render(w io.Writer, t *taxonomy.Taxonomy, r Report) error {
	if err := Page(t, r).Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, creating parent directories.
func WriteFile(path string, t *taxonomy.Taxonomy, r Report) (err error) {
	if path == "" {
		return errors.New("export path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Render(f, t, r)
}

// Open shows an exported file in the default browser.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return browser.OpenFile(abs)
}

func globalOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Theme: theme, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "bottom"}),
	}
}

// metricRadar draws one area per category over the twelve metric axes,
// with the full profile outlined on top.
func metricRadar(t *taxonomy.Taxonomy, r Report) *charts.Radar {
	radar := charts.NewRadar()
	maxValue := r.maxValue()
	metrics := t.Metrics()
	indicators := make([]*opts.Indicator, 0, len(metrics))
	for _, m := range metrics {
		ind := &opts.Indicator{Name: m.Label(true), Max: maxValue}
		if c, ok := t.CategoryOf(m.Name); ok {
			ind.Color = c.Color
		}
		indicators = append(indicators, ind)
	}
	radar.SetGlobalOptions(append(globalOpts(r.Primary.Name, "Metric profile"),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: 5,
		}),
	)...)

	for _, c := range t.Categories() {
		values := make([]float64, len(metrics))
		for i, m := range metrics {
			if cat, ok := t.CategoryOf(m.Name); ok && cat.Name == c.Name {
				values[i] = r.Primary.Scores[m.Name]
			}
		}
		radar.AddSeries(c.Name, []opts.RadarData{{Name: c.Name, Value: values}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Color}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: c.Color, Opacity: opts.Float(0.3)}),
		)
	}
	total := make([]float64, len(metrics))
	for i, m := range metrics {
		total[i] = r.Primary.Scores[m.Name]
	}
	radar.AddSeries(score.TotalName, []opts.RadarData{{Name: r.Primary.Name, Value: total}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#6E6E6E"}),
	)
	return radar
}

// metricBars lists every metric, highest first, colored by category.
func metricBars(t *taxonomy.Taxonomy, r Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(r.Primary.Name, "Metrics by score"),
		charts.WithXAxisOpts(opts.XAxis{Max: r.maxValue()}),
	)...)

	names := t.MetricNames()
	sort.SliceStable(names, func(i, j int) bool {
		return r.Primary.Scores[names[i]] < r.Primary.Scores[names[j]]
	})
	labels := make([]string, 0, len(names))
	items := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		color := ""
		if c, ok := t.CategoryOf(name); ok {
			color = c.Color
		}
		labels = append(labels, t.Label(name, true))
		items = append(items, opts.BarData{
			Name:      name,
			Value:     score.Round1(r.Primary.Scores[name]),
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}
	bar.SetXAxis(labels).
		AddSeries("Score", items, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"})).
		XYReversal()
	return bar
}

// categoryBars shows the category averages followed by the total.
func categoryBars(t *taxonomy.Taxonomy, r Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(r.Primary.Name, "Category averages"),
		charts.WithYAxisOpts(opts.YAxis{Max: r.maxValue()}),
	)...)
	stats := score.Summarize(t, r.Primary.Scores)
	labels := make([]string, 0, len(stats))
	items := make([]opts.BarData, 0, len(stats))
	for _, st := range stats {
		labels = append(labels, st.Name)
		item := opts.BarData{Name: st.Name, Value: st.Average}
		if st.Color != "" {
			item.ItemStyle = &opts.ItemStyle{Color: st.Color}
		}
		items = append(items, item)
	}
	bar.SetXAxis(labels).
		AddSeries("Average", items, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

// compareRadar overlays the category profile of each assessment.
func compareRadar(t *taxonomy.Taxonomy, r Report) *charts.Radar {
	radar := charts.NewRadar()
	cats := t.Categories()
	indicators := make([]*opts.Indicator, 0, len(cats))
	for _, c := range cats {
		indicators = append(indicators, &opts.Indicator{Name: c.Name, Max: r.maxValue(), Color: c.Color})
	}
	radar.SetGlobalOptions(append(globalOpts("Comparison", "Category averages"),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators, Shape: "circle", SplitNumber: 5}),
	)...)

	seen := map[string]bool{}
	for _, a := range append([]model.Assessment{r.Primary}, r.Compare...) {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		avg := score.CategoryScores(t, a.Scores)
		values := make([]float64, 0, len(cats))
		for _, c := range cats {
			values = append(values, score.Round1(avg[c.Name]))
		}
		radar.AddSeries(a.Name, []opts.RadarData{{Name: a.Name, Value: values}},
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.15)}),
		)
	}
	return radar
}
