package state

import "github.com/atomicstack/tiledu/internal/layout"

// Direction is a directional selection move.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	case Right:
		return "right"
	}
	return "unknown"
}

// Neighbor finds the tile nearest to tiles[from] that lies entirely on the d
// side of it. Candidates are ranked by the gap along the movement axis, then
// by the offset between centres on the perpendicular axis, then by order.
func Neighbor(tiles []layout.Tile, from int, d Direction) (int, bool) {
	if from < 0 || from >= len(tiles) {
		return -1, false
	}
	src := tiles[from].Rect
	best := -1
	var bestGap, bestOffset int
	for i, tile := range tiles {
		if i == from {
			continue
		}
		gap, offset, ok := distance(src, tile.Rect, d)
		if !ok {
			continue
		}
		if best < 0 || gap < bestGap || (gap == bestGap && offset < bestOffset) {
			best, bestGap, bestOffset = i, gap, offset
		}
	}
	return best, best >= 0
}

func distance(src, dst layout.Rect, d Direction) (gap, offset int, ok bool) {
	switch d {
	case Right:
		gap = dst.X - src.Right()
		offset = abs(dst.CenterY2() - src.CenterY2())
	case Left:
		gap = src.X - dst.Right()
		offset = abs(dst.CenterY2() - src.CenterY2())
	case Down:
		gap = dst.Y - src.Bottom()
		offset = abs(dst.CenterX2() - src.CenterX2())
	case Up:
		gap = src.Y - dst.Bottom()
		offset = abs(dst.CenterX2() - src.CenterX2())
	default:
		return 0, 0, false
	}
	return gap, offset, gap >= 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
