package chart

import (
	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

var shades = []string{"░", "▒", "▓", "█"}

// Shade picks a block character for v on a 0..max scale.
func Shade(v, maxValue float64) string {
	if maxValue <= 0 || v <= 0 {
		return " "
	}
	frac := v / maxValue
	if frac > 1 {
		frac = 1
	}
	i := int(frac * float64(len(shades)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

// Heat renders a category by metric grid with the category average last.
func Heat(t *taxonomy.Taxonomy, categories []taxonomy.Category, values score.ScoreSet, opt Options) []string {
	if len(categories) == 0 {
		return []string{"No categories selected."}
	}
	maxValue := opt.scaleMax(values)
	cols := 0
	for _, c := range categories {
		if len(c.Metrics) > cols {
			cols = len(c.Metrics)
		}
	}

	headers := []string{"Category"}
	for i := 0; i < cols; i++ {
		headers = append(headers, "")
	}
	headers = append(headers, "Avg")

	rows := make([][]string, 0, len(categories)*2)
	colorRows := make([]string, 0, len(categories)*2)
	for _, c := range categories {
		names := []string{""}
		cells := []string{c.Name}
		for i := 0; i < cols; i++ {
			if i >= len(c.Metrics) {
				names = append(names, "")
				cells = append(cells, "")
				continue
			}
			m := c.Metrics[i]
			v := values[m.Name]
			names = append(names, truncate(t.Label(m.Name, true), 12))
			cells = append(cells, Shade(v, maxValue)+Shade(v, maxValue)+" "+FormatValue(v, opt.Pending))
		}
		names = append(names, "")
		cells = append(cells, FormatValue(score.CategoryAverage(c, values), opt.Pending))
		rows = append(rows, names, cells)
		colorRows = append(colorRows, "", c.Color)
	}

	lines := FormatTable(headers, rows, map[int]bool{cols + 1: true})
	for i := range rows {
		if colorRows[i] != "" {
			lines[i+1] = opt.Style.apply(colorRows[i], lines[i+1])
		}
	}
	return lines
}
