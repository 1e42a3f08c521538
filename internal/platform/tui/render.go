package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
	"github.com/vovakirdan/tui-sprite/internal/selection"
)

// cellWidth is the number of terminal columns one canvas pixel occupies,
// which makes pixels roughly square in most fonts.
const cellWidth = 2

// onionStrength is how much of the previous frame shows through.
const onionStrength = 0.3

// canvasView is everything needed to draw the canvas for one frame.
type canvasView struct {
	pixels  *pixel.Buffer // Frame with any floating selection stamped on top
	onion   *pixel.Buffer // Previous frame, or nil
	preview *pixel.Buffer // In-progress shape, or nil

	outline    core.Rect
	hasOutline bool

	cursor  core.Point
	mirrors []core.Point
	showCur bool

	grid bool
}

// buildCanvasView captures the session state for rendering.
// During playback it shows the animation frame instead of the edited one.
func buildCanvasView(s *editor.Session, playIndex int, cursor core.Point, showCursor bool) canvasView {
	v := canvasView{grid: s.ShowGrid()}

	if s.Playing() {
		v.pixels = s.Flattened(playIndex)
		return v
	}

	v.pixels = s.Flattened(s.CurrentIndex())
	if s.OnionSkin() && s.CurrentIndex() > 0 {
		v.onion = s.Frame(s.CurrentIndex() - 1)
	}
	if overlay, ok := s.ShapePreview(); ok {
		v.preview = overlay
	}

	if r, ok := s.Marquee(); ok {
		v.outline, v.hasOutline = r, true
	} else if sel := s.Selection(); sel.State != selection.Empty {
		v.outline, v.hasOutline = sel.Rect, true
	}

	if showCursor {
		v.showCur = true
		v.cursor = cursor
		v.mirrors = mirroredCursors(s, cursor)
	}
	return v
}

// mirroredCursors returns the reflections of p under the active mirror
// axes, excluding p itself.
func mirroredCursors(s *editor.Session, p core.Point) []core.Point {
	m := s.Mirror()
	mx := s.Width() - 1 - p.X
	my := s.Height() - 1 - p.Y

	var out []core.Point
	if m.X {
		out = append(out, core.Pt(mx, p.Y))
	}
	if m.Y {
		out = append(out, core.Pt(p.X, my))
	}
	if m.X && m.Y {
		out = append(out, core.Pt(mx, my))
	}
	return out
}

// cell is one rendered canvas pixel.
type cell struct {
	bg   lipgloss.Color
	fg   lipgloss.Color
	text string
}

// renderCanvas converts a canvas view to a styled string.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func renderCanvas(v canvasView, th Theme) string {
	b := v.pixels
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(b.W * b.H * cellWidth * 4)

	row := make([]cell, b.W)
	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < b.W; x++ {
			row[x] = v.cellAt(x, y, th)
		}

		x := 0
		for x < b.W {
			start := row[x]
			var run strings.Builder
			for x < b.W && row[x].bg == start.bg && row[x].fg == start.fg {
				run.WriteString(row[x].text)
				x++
			}
			style := lipgloss.NewStyle().Background(start.bg)
			if start.fg != "" {
				style = style.Foreground(start.fg)
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// cellAt resolves the color and glyph of canvas cell (x, y).
// Precedence from top: cursor, mirrored cursor, outline, grid dot.
func (v canvasView) cellAt(x, y int, th Theme) cell {
	checker := th.CheckerDark
	if (x+y)%2 == 0 {
		checker = th.CheckerLight
	}

	px := v.pixels.At(x, y)
	if v.preview != nil {
		if p := v.preview.At(x, y); p.Visible() {
			px = p
		}
	}

	c := cell{text: "  "}
	switch {
	case px.A == 255:
		c.bg = lipgloss.Color(colors.FromPixel(px))
	case px.Visible():
		c.bg = blend(checker, px, float64(px.A)/255)
	case v.onion != nil && v.onion.At(x, y).Visible():
		c.bg = blend(checker, v.onion.At(x, y), onionStrength)
	default:
		c.bg = checker
		if v.grid {
			c.fg, c.text = th.GridDot, " ·"
		}
	}

	switch {
	case v.showCur && v.cursor.X == x && v.cursor.Y == y:
		c.fg, c.text = th.Cursor, "[]"
	case v.showCur && containsPoint(v.mirrors, x, y):
		c.fg, c.text = th.MirrorCursor, "<>"
	case v.hasOutline && onBorder(v.outline, x, y):
		c.fg, c.text = th.Outline, "░░"
	}
	return c
}

// blend mixes px over a background color by t in [0, 1].
func blend(bg lipgloss.Color, px pixel.RGBA, t float64) lipgloss.Color {
	base, err := colorful.Hex(string(bg))
	if err != nil {
		// ANSI palette index; no RGB to blend with.
		return lipgloss.Color(colors.FromPixel(px))
	}
	top := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
	return lipgloss.Color(base.BlendRgb(top, t).Clamped().Hex())
}

func onBorder(r core.Rect, x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.X || y == r.Y || x == r.Right()-1 || y == r.Bottom()-1
}

func containsPoint(pts []core.Point, x, y int) bool {
	for _, p := range pts {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}
