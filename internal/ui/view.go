package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tiledu/internal/format"
	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/theme"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const emptyMessage = "(empty)"

// Renderer turns frames into full-screen text.
type Renderer struct {
	styles *theme.Styles
	keys   KeyMap
	help   help.Model
}

func NewRenderer(styles *theme.Styles, keys KeyMap) *Renderer {
	if styles == nil {
		styles = theme.Default()
	}
	return &Renderer{styles: styles, keys: keys, help: help.New()}
}

// Render returns exactly f.Height lines of f.Width cells each.
func (r *Renderer) Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	lines := make([]string, 0, f.Height)
	lines = append(lines, r.header(f))
	if f.Height == 1 {
		return lines[0]
	}
	lines = append(lines, r.body(f)...)
	lines = append(lines, r.footer(f))
	return strings.Join(lines, "\n")
}

func (r *Renderer) header(f Frame) string {
	left := " " + f.Path
	right := ""
	if f.Dir != nil {
		files, dirs := f.Dir.Count()
		right = r.styles.HeaderTotal.Render(fmt.Sprintf("%s · %d files · %d dirs ", format.Size(f.Dir.Size()), files, dirs))
	}
	return r.styles.Header.Render(format.Join(left, right, f.Width))
}

func (r *Renderer) footer(f Frame) string {
	detail := ""
	if f.Selected >= 0 && f.Selected < len(f.Layout.Tiles) {
		tile := f.Layout.Tiles[f.Selected]
		var total int64
		if f.Dir != nil {
			total = f.Dir.Size()
		}
		detail = " " + r.styles.FooterDetail.Render(tileLabel(tile)) +
			fmt.Sprintf("  %s (%s)", format.Size(tile.Size), format.Percent(tile.Size, total))
	}
	r.help.Width = f.Width / 2
	hints := r.help.ShortHelpView(r.keys.ShortHelp()) + " "
	return r.styles.Footer.Render(format.Join(detail, hints, f.Width))
}

func (r *Renderer) body(f Frame) []string {
	rows := f.Height - headerRows - footerRows
	if rows <= 0 {
		return nil
	}
	c := newCanvas(f.Width, rows)
	if f.Layout.Empty() {
		msg := format.Truncate(emptyMessage, f.Width)
		c.text((f.Width-format.Width(msg))/2, rows/2, f.Width, msg, c.style(r.styles.Empty))
		return c.lines()
	}
	origin := f.Layout.Bounds
	var total int64
	if f.Dir != nil {
		total = f.Dir.Size()
	}
	for i, tile := range f.Layout.Tiles {
		rect := tile.Rect
		rect.X -= origin.X
		rect.Y -= origin.Y
		c.tile(rect, tile, total, r.tileStyle(tile, i == f.Selected), i == f.Selected)
	}
	return c.lines()
}

func (r *Renderer) tileStyle(tile layout.Tile, selected bool) *lipgloss.Style {
	switch {
	case selected:
		return r.styles.Selected
	case tile.Aggregate():
		return r.styles.Aggregate
	case tile.Node.IsDir():
		return r.styles.Directory
	}
	return r.styles.File(tile.Node.Name())
}

func tileLabel(tile layout.Tile) string {
	switch {
	case tile.Aggregate():
		return fmt.Sprintf("(%d small items)", len(tile.Members))
	case tile.Node.IsDir():
		return tile.Node.Name() + "/"
	}
	return tile.Node.Name()
}

// canvas is a cell grid with one style slot per cell. A zero rune marks the
// trailing cell of a double-width rune.
type canvas struct {
	width  int
	height int
	runes  [][]rune
	slots  [][]int
	styles []*lipgloss.Style
	index  map[*lipgloss.Style]int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  width,
		height: height,
		runes:  make([][]rune, height),
		slots:  make([][]int, height),
		styles: []*lipgloss.Style{nil},
		index:  map[*lipgloss.Style]int{},
	}
	for y := 0; y < height; y++ {
		c.runes[y] = []rune(strings.Repeat(" ", width))
		c.slots[y] = make([]int, width)
	}
	return c
}

func (c *canvas) style(s *lipgloss.Style) int {
	if s == nil {
		return 0
	}
	if idx, ok := c.index[s]; ok {
		return idx
	}
	c.styles = append(c.styles, s)
	c.index[s] = len(c.styles) - 1
	return len(c.styles) - 1
}

func (c *canvas) set(x, y int, r rune, slot int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.slots[y][x] = slot
}

// text writes s from x, y without exceeding maxWidth cells.
func (c *canvas) text(x, y, maxWidth int, s string, slot int) {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			return
		}
		c.set(x+used, y, r, slot)
		if w == 2 {
			c.set(x+used+1, y, 0, slot)
		}
		used += w
	}
}

func (c *canvas) tile(rect layout.Rect, tile layout.Tile, total int64, s *lipgloss.Style, selected bool) {
	slot := c.style(s)
	if rect.Width < 2 || rect.Height < 2 {
		fill := '░'
		if selected {
			fill = '▓'
		}
		for y := rect.Y; y < rect.Bottom(); y++ {
			for x := rect.X; x < rect.Right(); x++ {
				c.set(x, y, fill, slot)
			}
		}
		return
	}

	box := thinBox
	if selected {
		box = heavyBox
	}
	right, bottom := rect.Right()-1, rect.Bottom()-1
	for x := rect.X + 1; x < right; x++ {
		c.set(x, rect.Y, box.horizontal, slot)
		c.set(x, bottom, box.horizontal, slot)
	}
	for y := rect.Y + 1; y < bottom; y++ {
		c.set(rect.X, y, box.vertical, slot)
		c.set(right, y, box.vertical, slot)
		if selected {
			for x := rect.X + 1; x < right; x++ {
				c.set(x, y, ' ', slot)
			}
		}
	}
	c.set(rect.X, rect.Y, box.topLeft, slot)
	c.set(right, rect.Y, box.topRight, slot)
	c.set(rect.X, bottom, box.bottomLeft, slot)
	c.set(right, bottom, box.bottomRight, slot)

	inner := rect.Width - 2
	if inner <= 0 || rect.Height < 3 {
		return
	}
	c.text(rect.X+1, rect.Y+1, inner, format.Truncate(tileLabel(tile), inner), slot)
	if rect.Height >= 4 {
		size := format.Size(tile.Size)
		if share := size + " " + format.Percent(tile.Size, total); format.Width(share) <= inner {
			size = share
		}
		c.text(rect.X+1, rect.Y+2, inner, format.Truncate(size, inner), slot)
	}
}

// lines renders each row, styling runs of cells that share a slot.
func (c *canvas) lines() []string {
	out := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var line, run strings.Builder
		current := c.slots[y][0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if s := c.styles[current]; s != nil {
				line.WriteString(s.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			if c.slots[y][x] != current {
				flush()
				current = c.slots[y][x]
			}
			if r := c.runes[y][x]; r != 0 {
				run.WriteRune(r)
			}
		}
		flush()
		out[y] = line.String()
	}
	return out
}

type boxRunes struct {
	horizontal  rune
	vertical    rune
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
}

var (
	thinBox  = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
	heavyBox = boxRunes{'━', '┃', '┏', '┓', '┗', '┛'}
)
