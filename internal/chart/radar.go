package chart

import (
	"fmt"
	"math"
	"strings"
)

// Axis is one spoke of a radar chart.
type Axis struct {
	Label string
	Color string
	Value float64
}

// RadarSeries is a polygon drawn over the axes; Values align with the axes.
// When EdgeColors is set, the edge leaving axis i takes EdgeColors[i].
type RadarSeries struct {
	Name       string
	Color      string
	Values     []float64
	EdgeColors []string
}

func (s RadarSeries) edgeColor(i int) string {
	if i < len(s.EdgeColors) && s.EdgeColors[i] != "" {
		return s.EdgeColors[i]
	}
	return s.Color
}

const (
	defaultRadarWidth  = 48
	defaultRadarHeight = 16
	radarRings         = 5
	radarFill          = 0.8
	labelOffset        = 1.12
	gridColor          = "#6E6E6E"
)

// AxisAngle returns the angle of axis i out of n, starting at the top and
// advancing clockwise on screen.
func AxisAngle(i, n int) float64 {
	return float64(i)*2*math.Pi/float64(n) - math.Pi/2
}

// AxisKey returns the short key printed at the end of axis i.
func AxisKey(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

// Radar renders a braille radar chart with lettered axes and a key below.
func Radar(axes []Axis, series []RadarSeries, opt Options) []string {
	if len(axes) == 0 {
		return []string{"No categories selected."}
	}
	width, height := opt.Width, opt.Height
	if width <= 0 {
		width = defaultRadarWidth
	}
	if height <= 0 {
		height = defaultRadarHeight
	}
	maxValue := opt.Max
	if maxValue <= 0 {
		maxValue = 5
	}

	c := newCanvas(width, height)
	pw, ph := c.pixelSize()
	cx, cy := float64(pw-1)/2, float64(ph-1)/2
	radius := math.Min(cx, cy) * radarFill
	n := len(axes)

	point := func(i int, r float64) (int, int) {
		a := AxisAngle(i, n)
		return int(math.Round(cx + r*math.Cos(a))), int(math.Round(cy + r*math.Sin(a)))
	}

	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		polygon(c, n, func(i int) (int, int) {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			return point(i, radius*v/maxValue)
		}, s.edgeColor, solidLine)
	}
	for k := 1; k <= radarRings; k++ {
		r := radius * float64(k) / radarRings
		polygon(c, n, func(i int) (int, int) { return point(i, r) }, func(int) string { return gridColor }, dottedLine)
	}
	ox, oy := int(math.Round(cx)), int(math.Round(cy))
	for i := 0; i < n; i++ {
		x, y := point(i, radius)
		c.line(ox, oy, x, y, gridColor, dottedLine)
	}
	for i, ax := range axes {
		x, y := point(i, radius*labelOffset+2)
		c.text(x/2, y/4, AxisKey(i), ax.Color)
	}

	lines := c.render(opt.Style)
	if len(series) > 1 {
		names := make([]string, 0, len(series))
		for _, s := range series {
			names = append(names, opt.Style.apply(s.Color, "━")+" "+s.Name)
		}
		lines = append(lines, strings.Join(names, "  "))
	}
	return append(lines, radarKey(axes, width, opt)...)
}

// polygon closes a shape through the n points returned by at.
func polygon(c *canvas, n int, at func(i int) (int, int), color func(i int) string, style lineStyle) {
	if n == 1 {
		x, y := at(0)
		c.dot(x, y, color(0))
		return
	}
	for i := 0; i < n; i++ {
		x0, y0 := at(i)
		x1, y1 := at((i + 1) % n)
		c.line(x0, y0, x1, y1, color(i), style)
	}
}

func radarKey(axes []Axis, width int, opt Options) []string {
	entries := make([]string, len(axes))
	plain := make([]string, len(axes))
	entryW := 0
	for i, ax := range axes {
		label := truncate(ax.Label, maxLabelWidth)
		plain[i] = fmt.Sprintf("%s %s %s", AxisKey(i), label, FormatValue(ax.Value, opt.Pending))
		entries[i] = fmt.Sprintf("%s %s %s", opt.Style.apply(ax.Color, AxisKey(i)), label, FormatValue(ax.Value, opt.Pending))
		if w := displayWidth(plain[i]); w > entryW {
			entryW = w
		}
	}
	cols := width / (entryW + 2)
	if cols < 1 {
		cols = 1
	}
	rows := (len(entries) + cols - 1) / cols
	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			i := col*rows + r
			if i >= len(entries) {
				break
			}
			if col > 0 {
				b.WriteString("  ")
			}
			b.WriteString(entries[i])
			if pad := entryW - displayWidth(plain[i]); pad > 0 && col < cols-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}
