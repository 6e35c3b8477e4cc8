package gfx

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the one typeface the firmware carries.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	lineHeight = 10
	baseline   = 8
)

var _ drivers.Displayer = (*Canvas)(nil)

// Banner writes lines top-down from the upper-left corner.
func Banner(d drivers.Displayer, fg color.RGBA, lines ...string) {
	y := int16(baseline)
	for _, line := range lines {
		tinyfont.WriteLine(d, Font, 2, y, line, fg)
		y += lineHeight
	}
}

// WrapLines splits text into lines of at most cols runes, dropping blank
// lines. Used for panic reports that have to fit the panel width.
func WrapLines(text string, cols int) []string {
	if cols <= 0 {
		cols = 1
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		for line != "" {
			chunk, rest := takeRunes(line, cols)
			out = append(out, chunk)
			line = strings.TrimLeft(rest, " ")
		}
	}
	return out
}

// Columns reports how many glyphs of Font fit across width pixels.
func Columns(width int) int {
	_, w := tinyfont.LineWidth(Font, "0")
	if w == 0 {
		return width
	}
	return width / int(w)
}

// Rows reports how many text lines fit in height pixels.
func Rows(height int) int {
	return height / lineHeight
}

func takeRunes(s string, n int) (prefix, rest string) {
	if utf8.RuneCountInString(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
