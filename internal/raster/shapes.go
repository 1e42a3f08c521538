// Package raster enumerates the integer cells covered by stroked shapes.
// It only produces points; painting them is the caller's job.
package raster

import (
	"math"

	"github.com/vovakirdan/tui-sprite/internal/core"
)

// Line returns every cell on the segment from (x0, y0) to (x1, y1),
// both endpoints included, in order from the start point (Bresenham).
func Line(x0, y0, x1, y1 int) []core.Point {
	dx := core.Abs(x1 - x0)
	dy := -core.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	points := make([]core.Point, 0, core.Max(dx, -dy)+1)
	err := dx + dy
	for {
		points = append(points, core.Pt(x0, y0))
		if x0 == x1 && y0 == y1 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect returns the outline of the rectangle with opposite corners
// (x0, y0) and (x1, y1) as its four edges: top, bottom, left, right.
// Corner cells appear more than once.
func Rect(x0, y0, x1, y1 int) []core.Point {
	points := Line(x0, y0, x1, y0)
	points = append(points, Line(x0, y1, x1, y1)...)
	points = append(points, Line(x0, y0, x0, y1)...)
	return append(points, Line(x1, y0, x1, y1)...)
}

// Ellipse samples the ellipse inscribed in the box spanned by the two corners.
// The angular step is 1/(1.5 * circumference), circumference being
// approximated as 2*pi*sqrt((rx^2+ry^2)/2), so sampling density follows the
// perimeter and leaves no gaps. Consecutive duplicates are dropped.
func Ellipse(x0, y0, x1, y1 int) []core.Point {
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := math.Abs(float64(x1-x0)) / 2
	ry := math.Abs(float64(y1-y0)) / 2

	circum := 2 * math.Pi * math.Sqrt((rx*rx+ry*ry)/2)
	step := 1 / (circum * 1.5)

	var points []core.Point
	for t := 0.0; t <= 2*math.Pi; t += step {
		p := core.Pt(roundHalfUp(cx+rx*math.Cos(t)), roundHalfUp(cy+ry*math.Sin(t)))
		if n := len(points); n > 0 && points[n-1] == p {
			continue
		}
		points = append(points, p)
	}
	return points
}

// roundHalfUp rounds .5 toward positive infinity, so negative half values
// land on the same cell as their positive neighbours.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
