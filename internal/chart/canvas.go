// Package chart renders score charts as terminal text.
package chart

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

type lineStyle struct {
	period int
	on     int
}

var (
	solidLine  = lineStyle{period: 1, on: 1}
	dottedLine = lineStyle{period: 4, on: 1}
	dashedLine = lineStyle{period: 6, on: 3}
)

func (ls lineStyle) shouldPlot(step int) bool {
	if ls.period <= 1 {
		return true
	}
	if step < 0 {
		step = -step
	}
	return step%ls.period < ls.on
}

// canvas is a grid of braille cells, each 2x4 dots, with optional text overlay.
// A cell takes the color of the first layer that drew into it.
type canvas struct {
	width   int
	height  int
	masks   [][]uint8
	colors  [][]string
	overlay [][]rune
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.masks = make([][]uint8, height)
	c.colors = make([][]string, height)
	c.overlay = make([][]rune, height)
	for y := 0; y < height; y++ {
		c.masks[y] = make([]uint8, width)
		c.colors[y] = make([]string, width)
		c.overlay[y] = make([]rune, width)
	}
	return c
}

// pixelSize returns the dot resolution of the canvas.
func (c *canvas) pixelSize() (int, int) {
	return c.width * 2, c.height * 4
}

func (c *canvas) dot(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}
	cellX, cellY := x/2, y/4
	if cellY >= c.height || cellX >= c.width {
		return
	}
	c.masks[cellY][cellX] |= brailleDotMask(x%2, y%4)
	if c.colors[cellY][cellX] == "" {
		c.colors[cellY][cellX] = color
	}
}

func (c *canvas) line(x0, y0, x1, y1 int, color string, style lineStyle) {
	step := 0
	drawLine(x0, y0, x1, y1, func(x, y int) {
		if style.shouldPlot(step) {
			c.dot(x, y, color)
		}
		step++
	})
}

// text writes s starting at the given cell; wide runes occupy two cells.
func (c *canvas) text(col, row int, s string, color string) {
	if row < 0 || row >= c.height {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if col >= 0 && col+w <= c.width {
			c.overlay[row][col] = r
			c.colors[row][col] = color
			for i := 1; i < w; i++ {
				c.overlay[row][col+i] = -1
			}
		}
		col += w
	}
}

func (c *canvas) render(style Style) []string {
	lines := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		runColor := ""
		var run strings.Builder
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(style.apply(runColor, run.String()))
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			ch := c.overlay[y][x]
			if ch == -1 {
				continue
			}
			color := c.colors[y][x]
			if ch == 0 {
				if mask := c.masks[y][x]; mask != 0 {
					ch = brailleFromMask(mask)
				} else {
					ch, color = ' ', ""
				}
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(ch)
		}
		flush()
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
