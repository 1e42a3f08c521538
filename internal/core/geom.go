// Package core provides integer geometry shared by the editor packages.
// It contains no external dependencies so engine code stays pure and testable.
package core

// Point is an integer canvas coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle in canvas cells.
// X, Y is the top-left cell; W, H are the extent in cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromCorners builds the inclusive rectangle spanned by two drag corners.
// The origin is the per-axis minimum and the size is abs(diff)+1, so a
// zero-length drag yields a 1x1 rectangle.
func RectFromCorners(x0, y0, x1, y1 int) Rect {
	return Rect{
		X: Min(x0, x1),
		Y: Min(y0, y1),
		W: Abs(x1-x0) + 1,
		H: Abs(y1-y0) + 1,
	}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and other.
// The result is Empty when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := Max(r.X, other.X)
	y0 := Max(r.Y, other.Y)
	x1 := Min(r.Right(), other.Right())
	y1 := Min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// UnionPoint grows r to also cover the cell (x, y).
func (r Rect) UnionPoint(x, y int) Rect {
	if r.Empty() {
		return Rect{X: x, Y: y, W: 1, H: 1}
	}
	x0 := Min(r.X, x)
	y0 := Min(r.Y, y)
	x1 := Max(r.Right(), x+1)
	y1 := Max(r.Bottom(), y+1)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
