package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/fishcap/internal/score"
	"github.com/verte-zerg/fishcap/internal/taxonomy"
)

// Options controls chart layout.
type Options struct {
	// Width and Height are in terminal cells.
	Width  int
	Height int
	// Max is the scale maximum; non-positive means score.ScaleMax of the values.
	Max float64
	// Short selects abbreviated metric labels.
	Short bool
	// Pending hides numeric values while an animation runs.
	Pending bool
	Style   Style
}

// PendingText replaces numbers while values are animating.
const PendingText = "..."

const (
	minBarWidth   = 10
	maxLabelWidth = 28
	valueWidth    = 4
	markerRune    = '┊'
	fullBlock     = "█"
)

var partialBlocks = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

func (o Options) scaleMax(values score.ScoreSet) float64 {
	if o.Max > 0 {
		return o.Max
	}
	return score.ScaleMax(values, score.Ceiling)
}

// FormatValue renders a score with one decimal, or PendingText.
func FormatValue(v float64, pending bool) string {
	if pending {
		return PendingText
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Bars renders one horizontal bar per metric in order, followed by a scale.
func Bars(t *taxonomy.Taxonomy, values score.ScoreSet, order []string, opt Options) []string {
	if len(order) == 0 {
		return []string{"No categories selected."}
	}
	maxValue := opt.scaleMax(values)

	labels := make([]string, len(order))
	labelW := 0
	for i, name := range order {
		labels[i] = truncate(t.Label(name, opt.Short), maxLabelWidth)
		if w := displayWidth(labels[i]); w > labelW {
			labelW = w
		}
	}
	barW := opt.Width - labelW - valueWidth - 4
	if barW < minBarWidth {
		barW = minBarWidth
	}

	lines := make([]string, 0, len(order)+1)
	for i, name := range order {
		color := ""
		if c, ok := t.CategoryOf(name); ok {
			color = c.Color
		}
		v := values[name]
		filled, rest := bar(v, maxValue, barW)
		line := fmt.Sprintf("%s │%s%s %*s",
			padCell(labels[i], labelW, false),
			opt.Style.apply(color, filled),
			rest,
			valueWidth,
			FormatValue(v, opt.Pending),
		)
		lines = append(lines, line)
	}
	lines = append(lines, strings.Repeat(" ", labelW+2)+scaleLine(maxValue, barW))
	return lines
}

// bar splits a bar into its filled part and the marker-padded remainder.
func bar(v, maxValue float64, width int) (string, string) {
	frac := 0.0
	if maxValue > 0 {
		frac = v / maxValue
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	eighths := int(frac*float64(width)*8 + 0.5)
	full, part := eighths/8, eighths%8

	var filled strings.Builder
	filled.WriteString(strings.Repeat(fullBlock, full))
	used := full
	if part > 0 {
		filled.WriteString(partialBlocks[part])
		used++
	}

	var rest strings.Builder
	for i := used; i < width; i++ {
		if isQuarterMark(i, width) {
			rest.WriteRune(markerRune)
		} else {
			rest.WriteByte(' ')
		}
	}
	return filled.String(), rest.String()
}

func isQuarterMark(i, width int) bool {
	for k := 1; k <= 3; k++ {
		if i == width*k/4 {
			return true
		}
	}
	return false
}

func scaleLine(maxValue float64, width int) string {
	cells := []rune(strings.Repeat(" ", width+valueWidth+1))
	for k := 0; k <= 4; k += 2 {
		label := strconv.FormatFloat(maxValue*float64(k)/4, 'g', 3, 64)
		pos := width * k / 4
		if k == 4 {
			pos = width - len(label)
		} else if k > 0 {
			pos -= len(label) / 2
		}
		if pos < 0 {
			pos = 0
		}
		for i, r := range label {
			if pos+i < len(cells) {
				cells[pos+i] = r
			}
		}
	}
	return strings.TrimRight(string(cells), " ")
}

// Legend lists categories with their color swatch.
func Legend(categories []taxonomy.Category, style Style) string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, style.apply(c.Color, "■")+" "+c.Name)
	}
	return strings.Join(parts, "  ")
}

// StatsStrip renders the category averages followed by the total.
func StatsStrip(stats []score.CategoryStat, pending bool, style Style) string {
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		parts = append(parts, style.apply(st.Color, st.Name)+" "+FormatValue(st.Average, pending))
	}
	return strings.Join(parts, " │ ")
}
