package layout

import "math"

// place runs the squarified algorithm over items in order and validates the
// result. Each strip cut is rounded once against the remaining integer
// rectangle, so later strips absorb earlier rounding and the last item always
// receives the exact remainder.
func place(items []item, bounds Rect, limits Constraints) ([]Tile, bool) {
	weights := make([]float64, len(items))
	var total float64
	for i, it := range items {
		weights[i] = float64(it.size)
		total += weights[i]
	}
	if total <= 0 {
		for i := range weights {
			weights[i] = 1
		}
	}

	tiles := make([]Tile, 0, len(items))
	rem := bounds
	for i := 0; i < len(items); {
		remaining := sum(weights[i:])
		if remaining <= 0 {
			for j := i; j < len(weights); j++ {
				weights[j] = 1
			}
			remaining = float64(len(weights) - i)
		}

		column := rem.Width >= rem.Height
		side, extent := rem.Width, rem.Height
		if column {
			side, extent = rem.Height, rem.Width
		}
		scale := float64(rem.Area()) / remaining
		m := stripLength(weights[i:], scale, float64(side))
		stripWeight := sum(weights[i : i+m])

		cut := extent
		if i+m < len(items) {
			cut = clampCut(int(math.Round(stripWeight/remaining*float64(extent))), extent)
		}
		edges := splitStrip(weights[i:i+m], stripWeight, side)

		for t := 0; t < m; t++ {
			it := items[i+t]
			tile := Tile{Node: it.node, Members: it.members, Size: it.size}
			if column {
				tile.Rect = Rect{X: rem.X, Y: rem.Y + edges[t], Width: cut, Height: edges[t+1] - edges[t]}
			} else {
				tile.Rect = Rect{X: rem.X + edges[t], Y: rem.Y, Width: edges[t+1] - edges[t], Height: cut}
			}
			tiles = append(tiles, tile)
		}

		if column {
			rem.X += cut
			rem.Width -= cut
		} else {
			rem.Y += cut
			rem.Height -= cut
		}
		i += m
	}
	return tiles, valid(tiles, limits)
}

// valid requires positive dimensions everywhere and the minimum size on
// every tile except the last one placed.
func valid(tiles []Tile, limits Constraints) bool {
	for i, tile := range tiles {
		if tile.Width < 1 || tile.Height < 1 {
			return false
		}
		if i < len(tiles)-1 && !limits.Fits(tile.Rect) {
			return false
		}
	}
	return true
}

// stripLength returns how many leading weights join the next strip: items
// are added while the worst aspect ratio does not get worse.
func stripLength(weights []float64, scale, side float64) int {
	first := weights[0] * scale
	stripSum, lo, hi := first, first, first
	best := worstRatio(stripSum, lo, hi, side)
	m := 1
	for m < len(weights) {
		a := weights[m] * scale
		nextSum := stripSum + a
		nextLo, nextHi := math.Min(lo, a), math.Max(hi, a)
		ratio := worstRatio(nextSum, nextLo, nextHi, side)
		if ratio > best {
			break
		}
		stripSum, lo, hi, best = nextSum, nextLo, nextHi, ratio
		m++
	}
	return m
}

func worstRatio(total, lo, hi, side float64) float64 {
	if total <= 0 || lo <= 0 || side <= 0 {
		return math.Inf(1)
	}
	s2 := side * side
	t2 := total * total
	return math.Max(s2*hi/t2, t2/(s2*lo))
}

// splitStrip returns len(weights)+1 boundaries along a strip of the given
// length. Each boundary is rounded once and nudged so every tile keeps at
// least one cell when the length allows it.
func splitStrip(weights []float64, stripWeight float64, length int) []int {
	m := len(weights)
	edges := make([]int, m+1)
	edges[m] = length
	var cum float64
	for t := 1; t < m; t++ {
		cum += weights[t-1]
		share := float64(t) / float64(m)
		if stripWeight > 0 {
			share = cum / stripWeight
		}
		edges[t] = int(math.Round(share * float64(length)))
	}
	for t := 1; t < m; t++ {
		if edges[t] < edges[t-1]+1 {
			edges[t] = edges[t-1] + 1
		}
	}
	for t := m - 1; t >= 1; t-- {
		if edges[t] > edges[t+1]-1 {
			edges[t] = edges[t+1] - 1
		}
	}
	return edges
}

func clampCut(cut, extent int) int {
	if extent < 2 {
		return extent
	}
	if cut < 1 {
		return 1
	}
	if cut > extent-1 {
		return extent - 1
	}
	return cut
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
