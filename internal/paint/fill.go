package paint

import (
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// FloodFill replaces the 4-connected region of cells whose RGBA exactly
// matches the seed cell with opaque c.
// It is a no-op when the seed already equals the fill color or lies outside
// the buffer. Returns true if anything was painted.
//
// The fill walks an explicit stack, so region size is bounded only by the
// buffer and never by call depth. Visiting order is unspecified.
func FloodFill(dst *pixel.Buffer, x, y int, c pixel.RGBA) bool {
	if !dst.InBounds(x, y) {
		return false
	}
	c.A = 255
	seed := dst.At(x, y)
	if seed == c {
		return false
	}

	stack := []core.Point{core.Pt(x, y)}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if dst.At(p.X, p.Y) != seed {
			continue
		}
		dst.Set(p.X, p.Y, c)

		if p.X > 0 {
			stack = append(stack, core.Pt(p.X-1, p.Y))
		}
		if p.X < dst.W-1 {
			stack = append(stack, core.Pt(p.X+1, p.Y))
		}
		if p.Y > 0 {
			stack = append(stack, core.Pt(p.X, p.Y-1))
		}
		if p.Y < dst.H-1 {
			stack = append(stack, core.Pt(p.X, p.Y+1))
		}
	}
	return true
}
