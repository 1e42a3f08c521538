package paint

import (
	"testing"

	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

var red = pixel.Opaque(255, 0, 0)

func TestPenSinglePixel(t *testing.T) {
	buf := pixel.New(32, 32)
	e := NewEngine(1)

	e.Pen(buf, 5, 5, red)

	if got := buf.At(5, 5); got != red {
		t.Errorf("At(5,5) = %+v, expected %+v", got, red)
	}
	if n := buf.VisibleCount(); n != 1 {
		t.Errorf("VisibleCount() = %d, expected 1", n)
	}
}

func TestPenForcesOpaque(t *testing.T) {
	buf := pixel.New(4, 4)
	NewEngine(1).Pen(buf, 1, 1, pixel.RGBA{R: 9, G: 8, B: 7, A: 3})
	if got := buf.At(1, 1); got.A != 255 {
		t.Errorf("pen alpha = %d, expected 255", got.A)
	}
}

func TestBrushKernel(t *testing.T) {
	tests := []struct {
		name    string
		brush   int
		covered [][2]int
	}{
		{"size 1", 1, [][2]int{{5, 5}}},
		{"size 2 leans lower right", 2, [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}}},
		{"size 3 centered", 3, [][2]int{
			{4, 4}, {5, 4}, {6, 4},
			{4, 5}, {5, 5}, {6, 5},
			{4, 6}, {5, 6}, {6, 6},
		}},
		{"zero treated as one", 0, [][2]int{{5, 5}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := pixel.New(12, 12)
			NewEngine(tc.brush).Pen(buf, 5, 5, red)

			if n := buf.VisibleCount(); n != len(tc.covered) {
				t.Errorf("VisibleCount() = %d, expected %d", n, len(tc.covered))
			}
			for _, c := range tc.covered {
				if buf.At(c[0], c[1]) != red {
					t.Errorf("cell (%d,%d) not painted", c[0], c[1])
				}
			}
		})
	}
}

func TestPenNearEdgeIsClipped(t *testing.T) {
	buf := pixel.New(8, 8)
	NewEngine(3).Pen(buf, 0, 0, red)
	if n := buf.VisibleCount(); n != 4 {
		t.Errorf("VisibleCount() = %d, expected 4", n)
	}

	// Entirely outside: nothing happens.
	NewEngine(3).Pen(buf, -10, 40, red)
	if n := buf.VisibleCount(); n != 4 {
		t.Errorf("VisibleCount() after off-canvas pen = %d, expected 4", n)
	}
}

func TestMirrorBothAxes(t *testing.T) {
	const w, h = 16, 16
	buf := pixel.New(w, h)
	e := NewEngine(3)
	e.Mirror = Mirror{X: true, Y: true}

	e.Pen(buf, 3, 3, red)

	if n := buf.VisibleCount(); n != 36 {
		t.Fatalf("VisibleCount() = %d, expected 4 regions of 9", n)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			if c != buf.At(w-1-x, y) || c != buf.At(x, h-1-y) || c != buf.At(w-1-x, h-1-y) {
				t.Fatalf("cell (%d,%d) breaks symmetry", x, y)
			}
		}
	}
	for _, p := range [][2]int{{3, 3}, {12, 3}, {3, 12}, {12, 12}} {
		if buf.At(p[0], p[1]) != red {
			t.Errorf("region center (%d,%d) not painted", p[0], p[1])
		}
	}
}

func TestMirrorSingleAxis(t *testing.T) {
	buf := pixel.New(10, 6)
	e := NewEngine(1)
	e.Mirror.X = true

	e.Pen(buf, 1, 2, red)

	if buf.At(8, 2) != red {
		t.Error("horizontal mirror image missing")
	}
	if buf.At(1, 3) == red || buf.At(8, 3) == red {
		t.Error("vertical image painted without Mirror.Y")
	}
	if n := buf.VisibleCount(); n != 2 {
		t.Errorf("VisibleCount() = %d, expected 2", n)
	}
}

func TestEraserKeepsRGB(t *testing.T) {
	buf := pixel.New(4, 4)
	buf.Set(2, 2, pixel.Opaque(10, 20, 30))

	NewEngine(1).Eraser(buf, 2, 2)

	got := buf.At(2, 2)
	if got.A != 0 {
		t.Errorf("alpha = %d, expected 0", got.A)
	}
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("eraser changed RGB: %+v", got)
	}
}

func TestPaintPointTransparentErases(t *testing.T) {
	buf := pixel.New(4, 4)
	buf.Set(1, 1, red)

	NewEngine(1).PaintPoint(buf, 1, 1, pixel.Transparent)

	if buf.At(1, 1).Visible() {
		t.Error("PaintPoint with alpha 0 should erase")
	}
}

func TestTone(t *testing.T) {
	tests := []struct {
		name     string
		dir      Tone
		expected func() pixel.RGBA
	}{
		{"lighten", Lighten, func() pixel.RGBA {
			r, g, b := colors.HSLToRGB(10, 1, 0.6)
			return pixel.Opaque(r, g, b)
		}},
		{"darken", Darken, func() pixel.RGBA {
			r, g, b := colors.HSLToRGB(350, 1, 0.4)
			return pixel.Opaque(r, g, b)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := pixel.New(4, 4)
			buf.Set(1, 1, red)
			e := NewEngine(1)

			e.BeginStroke()
			e.Tone(buf, 1, 1, tc.dir)
			once := buf.At(1, 1)
			if once != tc.expected() {
				t.Errorf("after one pass = %+v, expected %+v", once, tc.expected())
			}

			e.Tone(buf, 1, 1, tc.dir)
			if buf.At(1, 1) != once {
				t.Error("second pass in the same stroke changed the pixel")
			}
			e.EndStroke()

			e.BeginStroke()
			e.Tone(buf, 1, 1, tc.dir)
			if buf.At(1, 1) == once {
				t.Error("new stroke should tone the pixel again")
			}
		})
	}
}

func TestToneSkipsTransparent(t *testing.T) {
	buf := pixel.New(4, 4)
	buf.Set(0, 0, pixel.RGBA{R: 100, G: 50, B: 25, A: 0})
	e := NewEngine(1)

	e.BeginStroke()
	e.Tone(buf, 0, 0, Lighten)

	if got := buf.At(0, 0); got != (pixel.RGBA{R: 100, G: 50, B: 25, A: 0}) {
		t.Errorf("transparent pixel changed: %+v", got)
	}

	// A transparent cell is not marked, so painting it and toning again works.
	buf.Set(0, 0, red)
	e.Tone(buf, 0, 0, Lighten)
	if buf.At(0, 0) == red {
		t.Error("pixel should be toned once it becomes visible")
	}
}

func TestToneKeepsAlpha(t *testing.T) {
	buf := pixel.New(2, 2)
	buf.Set(0, 0, pixel.RGBA{R: 0, G: 0, B: 255, A: 128})
	e := NewEngine(1)
	e.Tone(buf, 0, 0, Darken)
	if a := buf.At(0, 0).A; a != 128 {
		t.Errorf("alpha = %d, expected 128", a)
	}
}

func TestPick(t *testing.T) {
	buf := pixel.New(4, 4)
	buf.Set(2, 1, pixel.Opaque(0x12, 0x34, 0x56))

	if hex, ok := Pick(buf, 2, 1); !ok || hex != "#123456" {
		t.Errorf("Pick() = %q, %v", hex, ok)
	}
	if _, ok := Pick(buf, 0, 0); ok {
		t.Error("picking a transparent cell should fail")
	}
	if _, ok := Pick(buf, 9, 9); ok {
		t.Error("picking out of bounds should fail")
	}
}

func TestShapesUseBrush(t *testing.T) {
	buf := pixel.New(16, 16)
	e := NewEngine(1)

	e.Line(buf, 0, 0, 7, 0, red)
	if n := buf.VisibleCount(); n != 8 {
		t.Errorf("line covers %d cells, expected 8", n)
	}

	buf.Clear()
	e.Rect(buf, 2, 2, 5, 5, red)
	if n := buf.VisibleCount(); n != 12 {
		t.Errorf("rect outline covers %d cells, expected 12", n)
	}
	if buf.At(3, 3).Visible() {
		t.Error("rect should not be filled")
	}

	buf.Clear()
	e.Brush = 3
	e.Line(buf, 4, 8, 10, 8, red)
	if n := buf.VisibleCount(); n != 9*3 {
		t.Errorf("thick line covers %d cells, expected 27", n)
	}
}
