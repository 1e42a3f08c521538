// Package paint applies brush tools to a frame buffer.
//
// Every operation takes the destination buffer explicitly and silently
// ignores cells outside it, so pointer samples that wander off the canvas
// need no special handling by the caller.
package paint

import (
	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
	"github.com/vovakirdan/tui-sprite/internal/raster"
)

// Tone selects the direction of the lighten/darken tools.
type Tone int

const (
	Lighten Tone = iota
	Darken
)

func (t Tone) String() string {
	if t == Darken {
		return "darken"
	}
	return "lighten"
}

// Mirror enables symmetric painting about the canvas center lines.
type Mirror struct {
	X bool // reflect across the vertical center line
	Y bool // reflect across the horizontal center line
}

// Engine holds the brush settings and per-stroke state.
// The zero value paints with a 1x1 brush and no mirroring.
type Engine struct {
	Brush  int
	Mirror Mirror

	// painted records cells already toned during the current stroke,
	// keyed by y*W+x.
	painted map[int]struct{}
}

// NewEngine creates an engine with the given brush size.
func NewEngine(brush int) *Engine {
	return &Engine{
		Brush:   brush,
		painted: make(map[int]struct{}),
	}
}

// BeginStroke resets per-stroke tracking. Call it on pointer down.
func (e *Engine) BeginStroke() {
	e.resetPainted()
}

// EndStroke resets per-stroke tracking. Call it on pointer up.
func (e *Engine) EndStroke() {
	e.resetPainted()
}

func (e *Engine) resetPainted() {
	if e.painted == nil {
		e.painted = make(map[int]struct{})
		return
	}
	clear(e.painted)
}

func (e *Engine) brush() int {
	if e.Brush < 1 {
		return 1
	}
	return e.Brush
}

// each calls fn for every in-bounds cell covered by the brush kernel
// centered on (x, y), including mirror images.
// The kernel starts at floor(k/2) cells up and left of the center, so even
// sizes lean toward the lower right.
func (e *Engine) each(dst *pixel.Buffer, x, y int, fn func(px, py int)) {
	k := e.brush()
	off := k / 2
	for ix := 0; ix < k; ix++ {
		for iy := 0; iy < k; iy++ {
			e.mirrored(dst, x-off+ix, y-off+iy, fn)
		}
	}
}

// mirrored calls fn for (x, y) and each enabled reflection of it.
// Every image is bounds-checked on its own.
func (e *Engine) mirrored(dst *pixel.Buffer, x, y int, fn func(px, py int)) {
	visit := func(px, py int) {
		if dst.InBounds(px, py) {
			fn(px, py)
		}
	}
	mx := dst.W - 1 - x
	my := dst.H - 1 - y

	visit(x, y)
	if e.Mirror.X {
		visit(mx, y)
	}
	if e.Mirror.Y {
		visit(x, my)
	}
	if e.Mirror.X && e.Mirror.Y {
		visit(mx, my)
	}
}

// Pen paints the kernel at (x, y) with c at full opacity.
func (e *Engine) Pen(dst *pixel.Buffer, x, y int, c pixel.RGBA) {
	c.A = 255
	e.each(dst, x, y, func(px, py int) {
		dst.Set(px, py, c)
	})
}

// Eraser clears the alpha of the kernel at (x, y), leaving RGB untouched.
func (e *Engine) Eraser(dst *pixel.Buffer, x, y int) {
	e.each(dst, x, y, func(px, py int) {
		dst.SetAlpha(px, py, 0)
	})
}

// PaintPoint stamps the kernel at (x, y): alpha 0 erases, anything else
// paints opaque c. Used by the shape tools.
func (e *Engine) PaintPoint(dst *pixel.Buffer, x, y int, c pixel.RGBA) {
	if c.A == 0 {
		e.Eraser(dst, x, y)
		return
	}
	e.Pen(dst, x, y, c)
}

// Tone shifts lightness and hue of the visible kernel cells at (x, y).
// A cell is changed at most once per stroke.
func (e *Engine) Tone(dst *pixel.Buffer, x, y int, dir Tone) {
	if e.painted == nil {
		e.painted = make(map[int]struct{})
	}
	e.each(dst, x, y, func(px, py int) {
		key := py*dst.W + px
		if _, done := e.painted[key]; done {
			return
		}
		c := dst.At(px, py)
		if !c.Visible() {
			return
		}
		dst.Set(px, py, shift(c, dir))
		e.painted[key] = struct{}{}
	})
}

// shift applies one tone step in HSL space, keeping alpha.
func shift(c pixel.RGBA, dir Tone) pixel.RGBA {
	h, s, l := colors.RGBToHSL(c.R, c.G, c.B)
	switch dir {
	case Lighten:
		l = core.ClampF(l+0.1, 0, 1)
		h = wrapHue(h + 10)
	case Darken:
		l = core.ClampF(l-0.1, 0, 1)
		s = core.ClampF(s+0.1, 0, 1)
		h = wrapHue(h - 10)
	}
	r, g, b := colors.HSLToRGB(h, s, l)
	return pixel.RGBA{R: r, G: g, B: b, A: c.A}
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

// Pick returns the hex color under (x, y).
// ok is false for transparent or out-of-bounds cells.
func Pick(src *pixel.Buffer, x, y int) (hex string, ok bool) {
	if !src.InBounds(x, y) {
		return "", false
	}
	c := src.At(x, y)
	if !c.Visible() {
		return "", false
	}
	return colors.FromPixel(c), true
}

// Line strokes the segment between two cells with the current brush.
func (e *Engine) Line(dst *pixel.Buffer, x0, y0, x1, y1 int, c pixel.RGBA) {
	e.stamp(dst, raster.Line(x0, y0, x1, y1), c)
}

// Rect strokes the outline of the box spanned by two cells.
func (e *Engine) Rect(dst *pixel.Buffer, x0, y0, x1, y1 int, c pixel.RGBA) {
	e.stamp(dst, raster.Rect(x0, y0, x1, y1), c)
}

// Ellipse strokes the ellipse inscribed in the box spanned by two cells.
func (e *Engine) Ellipse(dst *pixel.Buffer, x0, y0, x1, y1 int, c pixel.RGBA) {
	e.stamp(dst, raster.Ellipse(x0, y0, x1, y1), c)
}

func (e *Engine) stamp(dst *pixel.Buffer, points []core.Point, c pixel.RGBA) {
	for _, p := range points {
		e.PaintPoint(dst, p.X, p.Y, c)
	}
}

// Fill flood-fills from (x, y) and from each enabled mirror image of it.
// Returns true if any cell changed.
func (e *Engine) Fill(dst *pixel.Buffer, x, y int, c pixel.RGBA) bool {
	changed := false
	e.mirrored(dst, x, y, func(px, py int) {
		if FloodFill(dst, px, py, c) {
			changed = true
		}
	})
	return changed
}
