package selection

import (
	"testing"

	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

var (
	red  = pixel.Opaque(255, 0, 0)
	blue = pixel.Opaque(0, 0, 255)
)

// checker fills a w x h frame with a two-color pattern.
func checker(w, h int) *pixel.Buffer {
	b := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				b.Set(x, y, red)
			} else {
				b.Set(x, y, blue)
			}
		}
	}
	return b
}

func TestFinishRect(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		state          State
		rect           core.Rect
	}{
		{"forward drag", 1, 1, 3, 4, Grounded, core.NewRect(1, 1, 3, 4)},
		{"reverse drag", 3, 4, 1, 1, Grounded, core.NewRect(1, 1, 3, 4)},
		{"single click", 2, 2, 2, 2, Grounded, core.NewRect(2, 2, 1, 1)},
		{"clipped", -3, -3, 2, 1, Grounded, core.NewRect(0, 0, 3, 2)},
		{"clipped right", 6, 6, 12, 9, Grounded, core.NewRect(6, 6, 2, 2)},
		{"off canvas", -5, -5, -1, -2, Empty, core.Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := pixel.New(8, 8)
			var s Selection
			s.StartRect(frame, tc.x0, tc.y0)
			if got := s.FinishRect(frame, tc.x1, tc.y1); got != tc.state {
				t.Fatalf("FinishRect() state = %v, expected %v", got, tc.state)
			}
			if s.Rect() != tc.rect {
				t.Errorf("Rect() = %+v, expected %+v", s.Rect(), tc.rect)
			}
		})
	}
}

func TestFinishWithoutStart(t *testing.T) {
	var s Selection
	if got := s.FinishRect(pixel.New(4, 4), 1, 1); got != Empty {
		t.Errorf("FinishRect() without StartRect = %v", got)
	}
}

func TestMarquee(t *testing.T) {
	var s Selection
	if _, ok := s.Marquee(1, 1); ok {
		t.Error("Marquee() should be inactive before StartRect")
	}
	s.StartRect(pixel.New(8, 8), 5, 5)
	r, ok := s.Marquee(2, 6)
	if !ok || r != core.NewRect(2, 5, 4, 2) {
		t.Errorf("Marquee() = %+v, %v", r, ok)
	}
}

func TestLiftErasesAlphaOnly(t *testing.T) {
	frame := checker(6, 6)
	var s Selection
	s.Select(frame, core.NewRect(1, 1, 2, 2))

	if !s.Lift(frame) {
		t.Fatal("Lift() on grounded selection returned false")
	}
	if s.State() != Floating {
		t.Fatalf("State() = %v, expected floating", s.State())
	}

	v := s.View()
	if v.Buffer.W != 2 || v.Buffer.H != 2 {
		t.Fatalf("buffer is %dx%d, expected 2x2", v.Buffer.W, v.Buffer.H)
	}
	if v.Buffer.At(0, 0) != red || v.Buffer.At(1, 0) != blue {
		t.Error("buffer does not hold the lifted pixels")
	}

	got := frame.At(1, 1)
	if got.A != 0 || got.R != 255 {
		t.Errorf("frame under selection = %+v, expected red with alpha 0", got)
	}
	if frame.At(0, 0) != red {
		t.Error("pixel outside the selection changed")
	}

	// Lifting again is a no-op.
	if s.Lift(frame) {
		t.Error("second Lift() should be a no-op")
	}
}

func TestLiftOutsideFrame(t *testing.T) {
	frame := checker(4, 4)
	s := Selection{rect: core.NewRect(3, 3, 3, 3), active: true}

	s.Lift(frame)

	v := s.View()
	if v.Buffer.At(0, 0) != red {
		t.Error("in-frame corner should be lifted")
	}
	if v.Buffer.VisibleCount() != 1 {
		t.Errorf("off-frame cells should lift as transparent, got %d visible", v.Buffer.VisibleCount())
	}
}

func TestAnchorAlphaGated(t *testing.T) {
	frame := pixel.New(6, 6)
	frame.Set(4, 4, blue)
	clip := pixel.New(2, 2)
	clip.Set(0, 0, red)

	var s Selection
	s.Paste(frame, clip)
	// Centered paste of a 2x2 onto 6x6 lands at (2,2).
	if s.Rect() != core.NewRect(2, 2, 2, 2) {
		t.Fatalf("Rect() after Paste = %+v", s.Rect())
	}
	s.Nudge(1, 1)

	if !s.Anchor(frame) {
		t.Fatal("Anchor() of floating selection returned false")
	}
	if frame.At(3, 3) != red {
		t.Error("visible floating pixel not composited")
	}
	if frame.At(4, 4) != blue {
		t.Error("transparent floating pixel erased frame content")
	}
	if s.State() != Empty {
		t.Errorf("State() after Anchor = %v", s.State())
	}
}

func TestAnchorEmptyIsNoOp(t *testing.T) {
	frame := checker(4, 4)
	before := frame.Clone()
	var s Selection
	if s.Anchor(frame) {
		t.Error("Anchor() on empty selection returned true")
	}
	if !frame.Equal(before) {
		t.Error("Anchor() on empty selection changed the frame")
	}

	s.Select(frame, core.NewRect(0, 0, 2, 2))
	if s.Anchor(frame) {
		t.Error("Anchor() on grounded selection returned true")
	}
	if s.State() != Empty || !frame.Equal(before) {
		t.Error("anchoring a grounded selection should only clear it")
	}
}

func TestAnchorLiftRoundTrip(t *testing.T) {
	frame := checker(8, 8)
	frame.SetAlpha(3, 3, 0)
	var s Selection
	rect := core.NewRect(2, 2, 4, 3)
	s.Select(frame, rect)
	s.Lift(frame)
	lifted := s.View().Buffer.Clone()

	s.Anchor(frame)
	s.Select(frame, rect)
	s.Lift(frame)

	if !s.View().Buffer.Equal(lifted) {
		t.Error("anchor then lift did not reproduce the floating buffer")
	}
}

func TestStartRectAnchorsFirst(t *testing.T) {
	frame := pixel.New(8, 8)
	clip := pixel.New(1, 1)
	clip.Set(0, 0, red)

	var s Selection
	s.Paste(frame, clip)
	s.Nudge(-3, -3)

	if !s.StartRect(frame, 6, 6) {
		t.Error("StartRect() should report the anchor")
	}
	if frame.At(0, 0) != red {
		t.Error("floating pixel was not committed before the new marquee")
	}
	if s.Active() {
		t.Error("selection should be empty while the marquee is drawn")
	}
}

func TestNudge(t *testing.T) {
	t.Run("grounded moves the marquee only", func(t *testing.T) {
		frame := checker(6, 6)
		before := frame.Clone()
		var s Selection
		s.Select(frame, core.NewRect(1, 1, 2, 2))
		s.Nudge(1, 0)

		if s.State() != Grounded {
			t.Errorf("State() = %v, expected Grounded", s.State())
		}
		if s.Rect() != core.NewRect(2, 1, 2, 2) {
			t.Errorf("Rect() = %+v", s.Rect())
		}
		if !frame.Equal(before) {
			t.Error("nudging a grounded selection changed the frame")
		}
	})

	t.Run("floating carries the buffer", func(t *testing.T) {
		frame := pixel.New(6, 6)
		frame.Set(1, 1, red)
		var s Selection
		s.Select(frame, core.NewRect(1, 1, 1, 1))
		s.Lift(frame)
		s.Nudge(0, 2)

		if s.Rect() != core.NewRect(1, 3, 1, 1) {
			t.Errorf("Rect() = %+v", s.Rect())
		}
		s.Anchor(frame)
		if frame.At(1, 3) != red || frame.At(1, 1).Visible() {
			t.Error("floating pixel should land at (1,3)")
		}
	})

	t.Run("empty", func(t *testing.T) {
		var s Selection
		s.Nudge(1, 1)
		if s.Active() {
			t.Error("Nudge() activated an empty selection")
		}
	})
}

func TestAddPixel(t *testing.T) {
	frame := checker(8, 8)
	var s Selection

	s.AddPixel(frame, 2, 2)
	if s.State() != Floating || s.Rect() != core.NewRect(2, 2, 1, 1) {
		t.Fatalf("first AddPixel: state %v rect %+v", s.State(), s.Rect())
	}
	if frame.At(2, 2).Visible() {
		t.Error("added pixel not erased from frame")
	}

	s.AddPixel(frame, 5, 4)
	if s.Rect() != core.NewRect(2, 2, 4, 3) {
		t.Fatalf("Rect() after union = %+v", s.Rect())
	}

	buf := s.View().Buffer
	if buf.W != 4 || buf.H != 3 {
		t.Fatalf("buffer %dx%d does not match rect", buf.W, buf.H)
	}
	if buf.At(0, 0) != red {
		t.Error("previous pixel not kept at its offset")
	}
	if buf.At(3, 2) != blue {
		t.Error("new pixel not lifted at its offset")
	}
	if buf.VisibleCount() != 2 {
		t.Errorf("buffer has %d visible pixels, expected 2", buf.VisibleCount())
	}
	if !frame.At(3, 3).Visible() {
		t.Error("pixels inside the union but not clicked must stay in the frame")
	}
}

func TestAddPixelIdempotent(t *testing.T) {
	frame := checker(8, 8)
	var s Selection
	s.AddPixel(frame, 1, 1)
	s.AddPixel(frame, 4, 2)

	rect := s.Rect()
	buf := s.View().Buffer.Clone()
	frameBefore := frame.Clone()

	s.AddPixel(frame, 4, 2)

	if s.Rect() != rect {
		t.Errorf("Rect() changed: %+v -> %+v", rect, s.Rect())
	}
	if !s.View().Buffer.Equal(buf) {
		t.Error("buffer contents changed")
	}
	if !frame.Equal(frameBefore) {
		t.Error("frame changed")
	}
}

func TestAddPixelOffFrame(t *testing.T) {
	frame := checker(4, 4)
	var s Selection
	s.AddPixel(frame, -1, 0)
	if s.Active() {
		t.Error("off-frame AddPixel should be ignored")
	}
}

func TestAddPixelReplacesGrounded(t *testing.T) {
	frame := checker(8, 8)
	var s Selection
	s.Select(frame, core.NewRect(0, 0, 4, 4))

	s.AddPixel(frame, 6, 6)

	if s.Rect() != core.NewRect(6, 6, 1, 1) || !s.Floating() {
		t.Errorf("AddPixel on grounded selection: state %v rect %+v", s.State(), s.Rect())
	}
	if !frame.At(0, 0).Visible() {
		t.Error("grounded area must not be lifted")
	}
}

func TestDrag(t *testing.T) {
	frame := checker(8, 8)
	var s Selection
	s.Select(frame, core.NewRect(1, 1, 2, 2))

	s.BeginDrag(frame, 2, 2)
	if !s.Floating() || !s.Dragging() {
		t.Fatal("BeginDrag() should lift and start dragging")
	}
	s.DragTo(5, 6)
	if s.Rect() != core.NewRect(4, 5, 2, 2) {
		t.Errorf("Rect() after DragTo = %+v", s.Rect())
	}
	s.EndDrag()
	s.DragTo(0, 0)
	if s.Rect().X != 4 {
		t.Error("DragTo after EndDrag should be ignored")
	}
	if b := s.View().Buffer; b.W != 2 || b.H != 2 {
		t.Error("dragging resized the buffer")
	}
}

func TestDelete(t *testing.T) {
	t.Run("grounded", func(t *testing.T) {
		frame := checker(4, 4)
		var s Selection
		s.Select(frame, core.NewRect(0, 0, 2, 1))

		if !s.Delete(frame) {
			t.Fatal("Delete() returned false")
		}
		if frame.At(0, 0).Visible() || frame.At(1, 0).Visible() {
			t.Error("grounded delete should clear alpha under the rect")
		}
		if !frame.At(2, 0).Visible() {
			t.Error("cells outside the rect were cleared")
		}
	})

	t.Run("floating", func(t *testing.T) {
		frame := checker(4, 4)
		var s Selection
		s.Select(frame, core.NewRect(0, 0, 2, 2))
		s.Lift(frame)
		s.Nudge(2, 2)

		s.Delete(frame)

		if frame.At(3, 3) != red {
			t.Error("floating delete must not touch the destination area")
		}
		if s.Active() {
			t.Error("selection not cleared")
		}
	})

	t.Run("empty", func(t *testing.T) {
		var s Selection
		if s.Delete(pixel.New(2, 2)) {
			t.Error("Delete() on empty selection returned true")
		}
	})
}

func TestCapture(t *testing.T) {
	frame := checker(4, 4)
	var s Selection

	whole := s.Capture(frame)
	if !whole.Equal(frame) {
		t.Error("empty selection should capture the whole frame")
	}
	whole.Set(0, 0, blue)
	if frame.At(0, 0) != red {
		t.Error("captured buffer aliases the frame")
	}

	s.Select(frame, core.NewRect(1, 0, 2, 1))
	part := s.Capture(frame)
	if part.W != 2 || part.H != 1 || part.At(0, 0) != blue || part.At(1, 0) != red {
		t.Errorf("grounded capture = %dx%d", part.W, part.H)
	}

	s.Lift(frame)
	floating := s.Capture(frame)
	if !floating.Equal(s.View().Buffer) {
		t.Error("floating capture should copy the floating buffer")
	}
}

func TestPasteCentersWithFloor(t *testing.T) {
	frame := pixel.New(5, 5)
	var s Selection
	s.Paste(frame, pixel.New(2, 2))
	if s.Rect() != core.NewRect(1, 1, 2, 2) {
		t.Errorf("Rect() = %+v", s.Rect())
	}

	s.Paste(frame, pixel.New(8, 3))
	if s.Rect() != core.NewRect(-2, 1, 8, 3) {
		t.Errorf("oversized paste Rect() = %+v", s.Rect())
	}
}
