package layout

// Rect is an axis-aligned rectangle measured in terminal cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// CenterX2 and CenterY2 return twice the centre coordinate so comparisons
// stay in integers.
func (r Rect) CenterX2() int { return 2*r.X + r.Width }
func (r Rect) CenterY2() int { return 2*r.Y + r.Height }

// Contains reports whether the cell at x, y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
