// Package layout turns a set of sibling nodes into a squarified treemap of
// integer terminal cells.
//
// Tile areas follow node sizes, tiles partition the target rectangle exactly,
// and siblings too small to be drawn are folded into a single trailing
// aggregate tile. Compute is pure: the same siblings and bounds always
// produce the same layout.
package layout

import (
	"github.com/atomicstack/tiledu/internal/tree"
)

// Constraints is the smallest tile that can carry a border, a name and a
// size.
type Constraints struct {
	MinWidth  int
	MinHeight int
}

// DefaultConstraints leaves room for a border row, a name row, a size row and
// a short label.
var DefaultConstraints = Constraints{MinWidth: 10, MinHeight: 4}

func (c Constraints) normalized() Constraints {
	if c.MinWidth < 1 {
		c.MinWidth = 1
	}
	if c.MinHeight < 1 {
		c.MinHeight = 1
	}
	return c
}

// Fits reports whether r is at least the minimum tile size.
func (c Constraints) Fits(r Rect) bool {
	return r.Width >= c.MinWidth && r.Height >= c.MinHeight
}

// Tile is one rectangle of a layout. Individual tiles reference the node they
// show; aggregate tiles have a nil Node and list the siblings they absorbed.
type Tile struct {
	Rect
	Node    *tree.Node
	Members []*tree.Node
	Size    int64
}

// Aggregate reports whether the tile stands for several small siblings.
func (t Tile) Aggregate() bool { return t.Node == nil }

// Name returns the node name, or an empty string for aggregates.
func (t Tile) Name() string {
	if t.Node == nil {
		return ""
	}
	return t.Node.Name()
}

// Contains reports whether n is shown by this tile, directly or as an
// aggregate member.
func (t Tile) Contains(n *tree.Node) bool {
	if n == nil {
		return false
	}
	if t.Node != nil {
		return t.Node == n
	}
	for _, member := range t.Members {
		if member == n {
			return true
		}
	}
	return false
}

// Layout is the ordered tile set for one directory level.
type Layout struct {
	Bounds Rect
	Tiles  []Tile
}

// Empty reports whether the layout has no tiles.
func (l Layout) Empty() bool { return len(l.Tiles) == 0 }

// IndexOf returns the index of the tile showing n, or -1.
func (l Layout) IndexOf(n *tree.Node) int {
	for i, tile := range l.Tiles {
		if tile.Contains(n) {
			return i
		}
	}
	return -1
}

// Compute lays out siblings inside bounds. Degenerate bounds or an empty
// sibling set produce an empty layout.
func Compute(siblings []*tree.Node, bounds Rect, limits Constraints) Layout {
	out := Layout{Bounds: bounds}
	nodes := make([]*tree.Node, 0, len(siblings))
	for _, n := range siblings {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	if bounds.Empty() || len(nodes) == 0 {
		return out
	}
	tree.SortBySize(nodes)
	limits = limits.normalized()

	n := len(nodes)
	fits := countFitting(nodes, bounds, limits)

	if fits >= n-1 {
		if tiles, ok := place(individual(nodes), bounds, limits); ok {
			out.Tiles = tiles
			return out
		}
	}
	k := fits
	if k > n-2 {
		k = n - 2
	}
	for ; k >= 0; k-- {
		items := append(individual(nodes[:k]), aggregate(nodes[k:]))
		if tiles, ok := place(items, bounds, limits); ok {
			out.Tiles = tiles
			return out
		}
	}
	// k == 0 is a single tile covering bounds and is always accepted.
	agg := aggregate(nodes)
	out.Tiles = []Tile{{Rect: bounds, Members: agg.members, Size: agg.size}}
	return out
}

// countFitting returns how many leading siblings have an ideal area of at
// least the minimum tile area.
func countFitting(nodes []*tree.Node, bounds Rect, limits Constraints) int {
	var total int64
	for _, n := range nodes {
		total += n.Size()
	}
	area := float64(bounds.Area())
	floor := float64(limits.MinWidth * limits.MinHeight)
	count := 0
	for _, n := range nodes {
		ideal := area / float64(len(nodes))
		if total > 0 {
			ideal = float64(n.Size()) / float64(total) * area
		}
		if ideal < floor {
			break
		}
		count++
	}
	return count
}

type item struct {
	node    *tree.Node
	members []*tree.Node
	size    int64
}

func individual(nodes []*tree.Node) []item {
	items := make([]item, 0, len(nodes)+1)
	for _, n := range nodes {
		items = append(items, item{node: n, size: n.Size()})
	}
	return items
}

func aggregate(nodes []*tree.Node) item {
	members := make([]*tree.Node, len(nodes))
	copy(members, nodes)
	var size int64
	for _, n := range members {
		size += n.Size()
	}
	return item{members: members, size: size}
}
