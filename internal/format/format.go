// Package format renders sizes and fits labels into fixed cell widths.
package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const ellipsis = "…"

// Size returns a binary-prefixed size such as "3.9 KiB".
func Size(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// Percent formats part as a share of total with one decimal place.
func Percent(part, total int64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	return ansi.StringWidth(text)
}

// Truncate shortens text to at most width cells, marking the cut with an
// ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return ansi.Truncate(text, width, ellipsis)
}

// Fit truncates or right-pads text to exactly width cells.
func Fit(text string, width int) string {
	text = Truncate(text, width)
	var b strings.Builder
	b.WriteString(text)
	writeSpaces(&b, width-Width(text))
	return b.String()
}

// Join places left and right on one line of width cells, truncating left
// first when both do not fit.
func Join(left, right string, width int) string {
	rw := Width(right)
	if rw >= width {
		return Fit(right, width)
	}
	left = Truncate(left, width-rw-1)
	var b strings.Builder
	b.WriteString(left)
	writeSpaces(&b, width-Width(left)-rw)
	b.WriteString(right)
	return b.String()
}

func writeSpaces(b *strings.Builder, count int) {
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
	}
}
