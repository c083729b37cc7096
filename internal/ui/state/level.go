package state

import (
	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/tree"
)

// Level is the active directory together with its layout and the selected
// tile. Selected is -1 only when the layout is empty.
type Level struct {
	Dir      *tree.Node
	Layout   layout.Layout
	Selected int
}

// NewLevel lays out dir inside bounds and selects the first tile.
func NewLevel(dir *tree.Node, bounds layout.Rect, limits layout.Constraints) *Level {
	l := &Level{Dir: dir, Selected: -1}
	l.Relayout(bounds, limits)
	return l
}

// Relayout recomputes the layout for bounds. The selected node stays
// selected when it still has a tile; otherwise the first tile is selected.
func (l *Level) Relayout(bounds layout.Rect, limits layout.Constraints) {
	var keep *tree.Node
	if tile, ok := l.Current(); ok {
		keep = tile.Node
		if keep == nil && len(tile.Members) > 0 {
			keep = tile.Members[0]
		}
	}
	l.Layout = layout.Compute(l.Dir.Children(), bounds, limits)
	l.Selected = -1
	if l.Layout.Empty() {
		return
	}
	l.Selected = 0
	if keep != nil {
		if idx := l.Layout.IndexOf(keep); idx >= 0 {
			l.Selected = idx
		}
	}
}

// Current returns the selected tile.
func (l *Level) Current() (layout.Tile, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Layout.Tiles) {
		return layout.Tile{}, false
	}
	return l.Layout.Tiles[l.Selected], true
}

// Select moves the selection to the tile showing n, including aggregate
// membership. It reports whether the selection changed.
func (l *Level) Select(n *tree.Node) bool {
	idx := l.Layout.IndexOf(n)
	if idx < 0 || idx == l.Selected {
		return false
	}
	l.Selected = idx
	return true
}

// Move selects the nearest tile in direction d. It reports whether the
// selection changed.
func (l *Level) Move(d Direction) bool {
	next, ok := Neighbor(l.Layout.Tiles, l.Selected, d)
	if !ok {
		return false
	}
	l.Selected = next
	return true
}
