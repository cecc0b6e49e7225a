package chart

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// Style paints text in a hex color such as "#28A745". A nil Style leaves text plain.
type Style func(color, text string) string

func (s Style) apply(color, text string) string {
	if s == nil || color == "" || text == "" {
		return text
	}
	return s(color, text)
}

// ANSI colors text with 24-bit escape sequences. Unparseable colors are ignored.
func ANSI(color, text string) string {
	r, g, b, ok := parseHex(color)
	if !ok {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s%s", r, g, b, text, colorReset)
}

// StyleFor returns ANSI for color-capable writers and nil otherwise.
func StyleFor(w io.Writer, force bool) Style {
	if ShouldUseColor(w, force) {
		return ANSI
	}
	return nil
}

// ShouldUseColor honors NO_COLOR and only colors terminals unless forced.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the width of stdout, or 80 when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func parseHex(color string) (r, g, b int, ok bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
