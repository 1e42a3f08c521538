// Package selection implements the rectangular marquee and the floating
// pixel buffer that can be moved around a frame before being anchored.
//
// A selection is in one of three states:
//
//	Empty     nothing selected
//	Grounded  a rectangle over the frame, pixels still in place
//	Floating  pixels lifted out of the frame into their own buffer
//
// Mutating methods take the active frame explicitly. The caller is
// responsible for anchoring before any other tool touches that frame, which
// keeps at most one floating buffer alive at a time.
package selection

import (
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// State is the lifecycle stage of a selection.
type State int

const (
	Empty State = iota
	Grounded
	Floating
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Floating:
		return "floating"
	default:
		return "empty"
	}
}

// Selection is the editor's single selection.
// The zero value is an empty selection.
type Selection struct {
	rect   core.Rect
	buffer *pixel.Buffer // non-nil only while floating; always rect.W x rect.H
	active bool

	dragging bool
	grab     core.Point // pointer offset from rect origin at drag start

	marquee bool
	start   core.Point // first corner of an in-progress marquee
}

// View is a read-only snapshot for rendering.
type View struct {
	State    State
	Rect     core.Rect
	Buffer   *pixel.Buffer
	Dragging bool
}

// State reports the current lifecycle stage.
func (s *Selection) State() State {
	switch {
	case !s.active:
		return Empty
	case s.buffer != nil:
		return Floating
	default:
		return Grounded
	}
}

// Active reports whether anything is selected.
func (s *Selection) Active() bool { return s.active }

// Floating reports whether pixels are lifted out of the frame.
func (s *Selection) Floating() bool { return s.active && s.buffer != nil }

// Dragging reports whether a move gesture is in progress.
func (s *Selection) Dragging() bool { return s.dragging }

// Rect returns the selected rectangle. Zero when empty.
func (s *Selection) Rect() core.Rect {
	if !s.active {
		return core.Rect{}
	}
	return s.rect
}

// View returns a snapshot of the selection. The buffer is shared, not copied.
func (s *Selection) View() View {
	return View{
		State:    s.State(),
		Rect:     s.Rect(),
		Buffer:   s.buffer,
		Dragging: s.dragging,
	}
}

// Contains reports whether (x, y) is inside the selected rectangle.
// Used to decide between moving the selection and starting a new one.
func (s *Selection) Contains(x, y int) bool {
	return s.active && s.rect.Contains(x, y)
}

// Clear drops the selection without touching any frame.
// A floating buffer is discarded.
func (s *Selection) Clear() {
	*s = Selection{}
}

// StartRect anchors any floating selection into frame and begins a new
// marquee at (x, y). Returns true if pixels were anchored.
func (s *Selection) StartRect(frame *pixel.Buffer, x, y int) bool {
	anchored := s.Anchor(frame)
	s.Clear()
	s.marquee = true
	s.start = core.Pt(x, y)
	return anchored
}

// Marquee returns the rectangle of the in-progress drag to (x, y),
// not yet clipped to the frame. ok is false when no marquee is active.
func (s *Selection) Marquee(x, y int) (r core.Rect, ok bool) {
	if !s.marquee {
		return core.Rect{}, false
	}
	return core.RectFromCorners(s.start.X, s.start.Y, x, y), true
}

// FinishRect completes the marquee at (x, y). The rectangle is clipped to
// frame; the selection becomes Grounded if anything remains, else Empty.
func (s *Selection) FinishRect(frame *pixel.Buffer, x, y int) State {
	r, ok := s.Marquee(x, y)
	s.marquee = false
	if !ok {
		return s.State()
	}
	s.Select(frame, r)
	return s.State()
}

// Select grounds the selection on r clipped to frame, replacing any
// previous (non-floating) selection. A floating selection is dropped, so
// anchor first if its pixels matter.
func (s *Selection) Select(frame *pixel.Buffer, r core.Rect) {
	r = r.Intersect(core.NewRect(0, 0, frame.W, frame.H))
	s.Clear()
	if r.Empty() {
		return
	}
	s.rect = r
	s.active = true
}

// SelectAll grounds the selection on the whole frame.
func (s *Selection) SelectAll(frame *pixel.Buffer) {
	s.Select(frame, core.NewRect(0, 0, frame.W, frame.H))
}

// Lift detaches the selected pixels from frame into a floating buffer and
// clears their alpha in the frame. RGB is left behind untouched.
// Out-of-frame cells lift as transparent. A no-op unless Grounded.
func (s *Selection) Lift(frame *pixel.Buffer) bool {
	if !s.active || s.buffer != nil {
		return false
	}
	s.buffer = capture(frame, s.rect)
	eraseAlpha(frame, s.rect)
	return true
}

// AddPixel grows the selection by one frame cell.
//
// Without a floating selection it starts a new 1x1 floating selection at
// (x, y). Otherwise the floating buffer is reallocated to cover the union
// of the old rectangle and the cell; visible pixels keep their frame
// positions, and the cell is lifted from the frame only if the buffer does
// not already hold a visible pixel there. Off-frame cells are ignored.
func (s *Selection) AddPixel(frame *pixel.Buffer, x, y int) {
	if !frame.InBounds(x, y) {
		return
	}
	if !s.Floating() {
		s.Clear()
		s.rect = core.NewRect(x, y, 1, 1)
		s.active = true
		s.Lift(frame)
		return
	}

	old := s.rect
	grown := old.UnionPoint(x, y)
	buf := pixel.New(grown.W, grown.H)
	for py := 0; py < old.H; py++ {
		for px := 0; px < old.W; px++ {
			c := s.buffer.At(px, py)
			if !c.Visible() {
				continue
			}
			buf.Set(old.X+px-grown.X, old.Y+py-grown.Y, c)
		}
	}

	lx, ly := x-grown.X, y-grown.Y
	if !buf.At(lx, ly).Visible() {
		if c := frame.At(x, y); c.Visible() {
			buf.Set(lx, ly, c)
			frame.SetAlpha(x, y, 0)
		}
	}

	s.rect = grown
	s.buffer = buf
}

// BeginDrag lifts the selection if needed and starts moving it with the
// pointer at (x, y). A no-op when empty.
func (s *Selection) BeginDrag(frame *pixel.Buffer, x, y int) {
	if !s.active {
		return
	}
	s.Lift(frame)
	s.dragging = true
	s.grab = core.Pt(x-s.rect.X, y-s.rect.Y)
}

// DragTo moves the floating rectangle so the grab point sits under (x, y).
// The buffer is never resized.
func (s *Selection) DragTo(x, y int) {
	if !s.dragging {
		return
	}
	s.rect.X = x - s.grab.X
	s.rect.Y = y - s.grab.Y
}

// EndDrag finishes a move. The selection stays floating.
func (s *Selection) EndDrag() {
	s.dragging = false
}

// Nudge moves the selection by (dx, dy). A grounded selection only moves
// its rectangle; frame pixels stay put until the selection is lifted.
func (s *Selection) Nudge(dx, dy int) {
	if !s.active {
		return
	}
	s.rect = s.rect.Translate(dx, dy)
}

// Anchor composites a floating buffer back into frame and empties the
// selection. Only visible floating pixels are written, so transparent
// areas never erase frame content; cells that fell off the frame are lost.
// Returns true if a floating buffer was composited.
func (s *Selection) Anchor(frame *pixel.Buffer) bool {
	if !s.Floating() {
		s.Clear()
		return false
	}
	s.Stamp(frame)
	s.Clear()
	return true
}

// Stamp composites the floating buffer into dst like Anchor, but leaves the
// selection floating. Used to flatten a frame for display or saving.
func (s *Selection) Stamp(dst *pixel.Buffer) {
	if !s.Floating() {
		return
	}
	r := s.rect
	for py := 0; py < r.H; py++ {
		for px := 0; px < r.W; px++ {
			c := s.buffer.At(px, py)
			if c.Visible() {
				dst.Set(r.X+px, r.Y+py, c)
			}
		}
	}
}

// Delete removes the selected pixels and empties the selection.
// A floating buffer is discarded; a grounded rectangle has its alpha cleared
// in frame. Returns false if nothing was selected.
func (s *Selection) Delete(frame *pixel.Buffer) bool {
	if !s.active {
		return false
	}
	if s.buffer == nil {
		eraseAlpha(frame, s.rect)
	}
	s.Clear()
	return true
}

// Capture copies what a clipboard copy would take: the floating buffer,
// the grounded rectangle of frame, or the whole frame when empty.
func (s *Selection) Capture(frame *pixel.Buffer) *pixel.Buffer {
	switch s.State() {
	case Floating:
		return s.buffer.Clone()
	case Grounded:
		return capture(frame, s.rect)
	default:
		return frame.Clone()
	}
}

// Paste anchors any floating selection, then floats a copy of clip centered
// on frame. Returns true if a previous selection was anchored.
func (s *Selection) Paste(frame, clip *pixel.Buffer) bool {
	anchored := s.Anchor(frame)
	if clip == nil || clip.W <= 0 || clip.H <= 0 {
		return anchored
	}
	s.rect = core.NewRect(
		core.FloorDiv(frame.W-clip.W, 2),
		core.FloorDiv(frame.H-clip.H, 2),
		clip.W, clip.H,
	)
	s.buffer = clip.Clone()
	s.active = true
	return anchored
}

// capture copies r out of frame; cells outside frame come back transparent.
func capture(frame *pixel.Buffer, r core.Rect) *pixel.Buffer {
	buf := pixel.New(r.W, r.H)
	for py := 0; py < r.H; py++ {
		for px := 0; px < r.W; px++ {
			buf.Set(px, py, frame.At(r.X+px, r.Y+py))
		}
	}
	return buf
}

func eraseAlpha(frame *pixel.Buffer, r core.Rect) {
	for py := r.Y; py < r.Bottom(); py++ {
		for px := r.X; px < r.Right(); px++ {
			frame.SetAlpha(px, py, 0)
		}
	}
}
