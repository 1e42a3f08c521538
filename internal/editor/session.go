// Package editor owns the state of one sprite editing session and turns
// pointer and keyboard gestures into calls on the paint, selection and
// history engines.
//
// A Session is not safe for concurrent use. Hosts feed it events one at a
// time; the SSH server gives every connection its own Session.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/history"
	"github.com/vovakirdan/tui-sprite/internal/paint"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
	"github.com/vovakirdan/tui-sprite/internal/raster"
	"github.com/vovakirdan/tui-sprite/internal/selection"
)

// Policy rejections surfaced to the user.
var (
	ErrSizeOutOfRange  = errors.New("canvas size out of range")
	ErrLastFrame       = errors.New("cannot delete the last frame")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidDocument = errors.New("invalid document")
)

// Options configures a new session.
type Options struct {
	Width, Height    int
	MinSize, MaxSize int
	FPS              int
	Brush            int
	MaxBrush         int
	HistoryCapacity  int
	Palette          colors.Palette
	ShowGrid         bool
	OnionSkin        bool
}

// Frame rate limits for playback.
const (
	MinFPS = 1
	MaxFPS = 24
)

// DefaultOptions returns the stock 32x32 setup.
func DefaultOptions() Options {
	return Options{
		Width:           32,
		Height:          32,
		MinSize:         8,
		MaxSize:         64,
		FPS:             8,
		Brush:           1,
		MaxBrush:        8,
		HistoryCapacity: history.DefaultCapacity,
		Palette:         colors.DefaultPalette(),
		ShowGrid:        true,
	}
}

// normalize fills zero values from the defaults and clamps the rest.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.MinSize <= 0 {
		o.MinSize = d.MinSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = core.Max(d.MaxSize, o.MinSize)
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	o.Width = core.Clamp(o.Width, o.MinSize, o.MaxSize)
	o.Height = core.Clamp(o.Height, o.MinSize, o.MaxSize)
	if o.FPS == 0 {
		o.FPS = d.FPS
	}
	o.FPS = core.Clamp(o.FPS, MinFPS, MaxFPS)
	if o.MaxBrush <= 0 {
		o.MaxBrush = d.MaxBrush
	}
	o.Brush = core.Clamp(o.Brush, 1, o.MaxBrush)
	if o.HistoryCapacity <= 0 {
		o.HistoryCapacity = d.HistoryCapacity
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	return o
}

// Session is one open sprite: its frames plus all editing state.
type Session struct {
	opts Options

	width, height int
	frames        []*pixel.Buffer
	current       int

	tool      Tool
	color     string
	paint     *paint.Engine
	sel       selection.Selection
	history   *history.Store
	clipboard *pixel.Buffer
	palette   colors.Palette

	fps       int
	playing   bool
	showGrid  bool
	onionSkin bool

	// revision increases on every change that should be persisted.
	revision uint64

	// Gesture state.
	drawing bool
	start   core.Point
	last    core.Point
	pointer core.Point
	hover   bool
}

// New creates a session with one empty frame.
func New(opts Options) *Session {
	opts = opts.normalize()
	s := &Session{
		opts:      opts,
		width:     opts.Width,
		height:    opts.Height,
		tool:      Pen,
		color:     "#000000",
		paint:     paint.NewEngine(opts.Brush),
		history:   history.New(opts.HistoryCapacity),
		palette:   opts.Palette.Clone(),
		fps:       opts.FPS,
		showGrid:  opts.ShowGrid,
		onionSkin: opts.OnionSkin,
	}
	s.AddFrame()
	return s
}

// frame returns the active frame buffer.
func (s *Session) frame() *pixel.Buffer {
	return s.frames[s.current]
}

// commit snapshots the active frame into history.
func (s *Session) commit() {
	s.history.Commit(s.current, s.frame())
	s.touch()
}

func (s *Session) touch() {
	s.revision++
}

// anchor commits any floating selection back into the active frame.
func (s *Session) anchor() {
	if s.sel.Anchor(s.frame()) {
		s.commit()
	}
}

// --- Accessors ---

func (s *Session) Width() int                { return s.width }
func (s *Session) Height() int               { return s.height }
func (s *Session) FrameCount() int           { return len(s.frames) }
func (s *Session) CurrentIndex() int         { return s.current }
func (s *Session) Tool() Tool                { return s.tool }
func (s *Session) Color() string             { return s.color }
func (s *Session) Brush() int                { return s.paint.Brush }
func (s *Session) Mirror() paint.Mirror      { return s.paint.Mirror }
func (s *Session) FPS() int                  { return s.fps }
func (s *Session) Playing() bool             { return s.playing }
func (s *Session) ShowGrid() bool            { return s.showGrid }
func (s *Session) OnionSkin() bool           { return s.onionSkin }
func (s *Session) Palette() colors.Palette   { return s.palette.Clone() }
func (s *Session) Selection() selection.View { return s.sel.View() }
func (s *Session) CanUndo() bool             { return s.history.CanUndo() }
func (s *Session) CanRedo() bool             { return s.history.CanRedo() }
func (s *Session) Revision() uint64          { return s.revision }
func (s *Session) Drawing() bool             { return s.drawing }
func (s *Session) HasClipboard() bool        { return s.clipboard != nil }
func (s *Session) Options() Options          { return s.opts }

// Frame returns frame i, or nil if out of range.
// The buffer is live; callers must treat it as read-only.
func (s *Session) Frame(i int) *pixel.Buffer {
	if i < 0 || i >= len(s.frames) {
		return nil
	}
	return s.frames[i]
}

// CurrentFrame returns the active frame. Read-only for callers.
func (s *Session) CurrentFrame() *pixel.Buffer {
	return s.frame()
}

// Pointer returns the last known pointer cell.
// ok is false once the pointer has left the canvas.
func (s *Session) Pointer() (core.Point, bool) {
	return s.pointer, s.hover
}

// Marquee returns the in-progress selection rectangle, if any.
func (s *Session) Marquee() (core.Rect, bool) {
	if s.tool != Select || !s.drawing {
		return core.Rect{}, false
	}
	return s.sel.Marquee(s.pointer.X, s.pointer.Y)
}

// Flattened returns a copy of frame i with any floating selection composited
// on top when i is the active frame.
func (s *Session) Flattened(i int) *pixel.Buffer {
	f := s.Frame(i)
	if f == nil {
		return nil
	}
	out := f.Clone()
	if i == s.current {
		s.sel.Stamp(out)
	}
	return out
}

// --- Settings ---

// SetTool anchors any floating selection, then switches tools.
func (s *Session) SetTool(t Tool) {
	s.anchor()
	s.tool = t
	s.drawing = false
}

// SetColor sets the drawing color from a hex string.
func (s *Session) SetColor(hex string) error {
	norm, ok := colors.Parse(hex)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	s.color = norm
	return nil
}

// SetBrush sets the brush size, clamped to [1, MaxBrush].
func (s *Session) SetBrush(n int) {
	s.paint.Brush = core.Clamp(n, 1, s.opts.MaxBrush)
}

// ToggleMirrorX flips horizontal mirroring.
func (s *Session) ToggleMirrorX() { s.paint.Mirror.X = !s.paint.Mirror.X }

// ToggleMirrorY flips vertical mirroring.
func (s *Session) ToggleMirrorY() { s.paint.Mirror.Y = !s.paint.Mirror.Y }

// ToggleGrid flips the grid overlay.
func (s *Session) ToggleGrid() { s.showGrid = !s.showGrid }

// ToggleOnionSkin flips display of the previous frame under the current one.
func (s *Session) ToggleOnionSkin() { s.onionSkin = !s.onionSkin }

// TogglePlaying starts or stops animation preview.
func (s *Session) TogglePlaying() { s.playing = !s.playing }

// SetFPS sets the playback rate, clamped to [MinFPS, MaxFPS].
func (s *Session) SetFPS(fps int) {
	fps = core.Clamp(fps, MinFPS, MaxFPS)
	if fps != s.fps {
		s.fps = fps
		s.touch()
	}
}

// PlaybackIndex returns which frame the preview shows after elapsed time.
func (s *Session) PlaybackIndex(elapsed time.Duration) int {
	if !s.playing || len(s.frames) == 0 {
		return s.current
	}
	step := int(elapsed.Seconds() * float64(s.fps))
	return step % len(s.frames)
}

// --- Pointer gestures ---

// PointerDown starts a gesture at cell (x, y). additive requests a
// single-pixel selection add with the select tool.
func (s *Session) PointerDown(x, y int, additive bool) {
	s.setPointer(x, y)
	frame := s.frame()

	if s.tool == Select {
		if additive {
			s.sel.AddPixel(frame, x, y)
			return
		}
		if s.sel.Active() && !s.sel.Contains(x, y) {
			s.anchor()
		}
		if s.sel.Contains(x, y) {
			s.sel.BeginDrag(frame, x, y)
			return
		}
		s.sel.StartRect(frame, x, y)
		s.drawing = true
		s.start = core.Pt(x, y)
		return
	}

	s.anchor()
	s.start = core.Pt(x, y)
	s.last = s.start
	s.paint.BeginStroke()

	switch s.tool {
	case Bucket:
		if s.paint.Fill(frame, x, y, s.colorPixel()) {
			s.commit()
		}
	case Line, Rect, Circle:
		s.drawing = true
	case Pen, Eraser, Lighten, Darken, Picker:
		s.drawing = true
		s.apply(x, y)
	}
}

// PointerMove continues a gesture. Freehand tools apply along the line from
// the previous sample so fast motion leaves no gaps.
func (s *Session) PointerMove(x, y int) {
	s.setPointer(x, y)

	if s.tool == Select {
		s.sel.DragTo(x, y)
		return
	}
	if !s.drawing || !s.tool.Freehand() && s.tool != Picker {
		return
	}

	from := s.last
	s.last = core.Pt(x, y)
	if s.tool == Picker {
		s.apply(x, y)
		return
	}
	for i, p := range raster.Line(from.X, from.Y, x, y) {
		if i == 0 {
			continue
		}
		s.apply(p.X, p.Y)
	}
}

// PointerUp ends a gesture and commits whatever it changed.
func (s *Session) PointerUp(x, y int) {
	s.setPointer(x, y)

	if s.tool == Select {
		if s.sel.Dragging() {
			s.sel.EndDrag()
		} else if s.drawing {
			s.sel.FinishRect(s.frame(), x, y)
		}
		s.drawing = false
		return
	}
	if !s.drawing {
		return
	}

	frame := s.frame()
	c := s.colorPixel()
	switch s.tool {
	case Line:
		s.paint.Line(frame, s.start.X, s.start.Y, x, y, c)
	case Rect:
		s.paint.Rect(frame, s.start.X, s.start.Y, x, y, c)
	case Circle:
		s.paint.Ellipse(frame, s.start.X, s.start.Y, x, y, c)
	}
	s.drawing = false
	s.paint.EndStroke()
	s.commit()
}

// PointerLeave records that the pointer left the canvas.
func (s *Session) PointerLeave() {
	s.hover = false
}

// Cancel abandons an in-progress shape or marquee without committing.
// Freehand strokes already applied stay on the frame.
func (s *Session) Cancel() {
	if s.drawing && s.tool.Freehand() {
		s.commit()
	}
	s.drawing = false
	s.sel.EndDrag()
	s.paint.EndStroke()
}

func (s *Session) setPointer(x, y int) {
	s.pointer = core.Pt(x, y)
	s.hover = x >= 0 && x < s.width && y >= 0 && y < s.height
}

// apply runs the active freehand tool at one pointer cell.
// Pointer positions outside the canvas do nothing.
func (s *Session) apply(x, y int) {
	frame := s.frame()
	if !frame.InBounds(x, y) {
		return
	}
	switch s.tool {
	case Pen:
		s.paint.Pen(frame, x, y, s.colorPixel())
	case Eraser:
		s.paint.Eraser(frame, x, y)
	case Lighten:
		s.paint.Tone(frame, x, y, paint.Lighten)
	case Darken:
		s.paint.Tone(frame, x, y, paint.Darken)
	case Picker:
		if hex, ok := paint.Pick(frame, x, y); ok {
			s.color = hex
			s.tool = Pen
			s.drawing = false
		}
	case Bucket, Line, Rect, Circle, Select:
		// Not freehand.
	}
}

func (s *Session) colorPixel() pixel.RGBA {
	c, err := colors.ToPixel(s.color)
	if err != nil {
		return pixel.Opaque(0, 0, 0)
	}
	return c
}

// ShapePreview renders the shape being dragged onto a transparent overlay
// the size of the canvas. ok is false when no shape drag is in progress.
func (s *Session) ShapePreview() (overlay *pixel.Buffer, ok bool) {
	if !s.drawing || !s.tool.Shape() {
		return nil, false
	}
	overlay = pixel.New(s.width, s.height)
	preview := *s.paint
	c := s.colorPixel()
	p := s.pointer
	switch s.tool {
	case Line:
		preview.Line(overlay, s.start.X, s.start.Y, p.X, p.Y, c)
	case Rect:
		preview.Rect(overlay, s.start.X, s.start.Y, p.X, p.Y, c)
	case Circle:
		preview.Ellipse(overlay, s.start.X, s.start.Y, p.X, p.Y, c)
	}
	return overlay, true
}

// --- History ---

// Undo steps back one snapshot. Returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	e, err := s.history.Undo()
	if err != nil {
		return false
	}
	s.restore(e)
	return true
}

// Redo steps forward one snapshot. Returns false when there is nothing to redo.
func (s *Session) Redo() bool {
	e, err := s.history.Redo()
	if err != nil {
		return false
	}
	s.restore(e)
	return true
}

// restore installs a snapshot as its frame, makes that frame active and
// drops the selection.
func (s *Session) restore(e history.Entry) {
	if e.Pixels.W != s.width || e.Pixels.H != s.height {
		return
	}
	for e.Frame >= len(s.frames) {
		s.frames = append(s.frames, pixel.New(s.width, s.height))
	}
	s.current = e.Frame
	s.frames[e.Frame] = e.Pixels
	s.sel.Clear()
	s.drawing = false
	s.touch()
}

// --- Clipboard ---

// Copy places the selection (or the whole frame) on the clipboard.
func (s *Session) Copy() {
	s.clipboard = s.sel.Capture(s.frame())
}

// Cut copies, then removes the copied pixels.
func (s *Session) Cut() {
	s.Copy()
	if !s.sel.Delete(s.frame()) {
		s.frame().Clear()
	}
	s.commit()
}

// Paste floats the clipboard centered on the canvas and switches to the
// select tool. Returns false when the clipboard is empty.
func (s *Session) Paste() bool {
	if s.clipboard == nil {
		return false
	}
	s.tool = Select
	s.drawing = false
	if s.sel.Paste(s.frame(), s.clipboard) {
		s.commit()
	}
	return true
}

// DeleteSelection removes the selected pixels, or clears the whole frame
// when nothing is selected.
func (s *Session) DeleteSelection() {
	if s.sel.Delete(s.frame()) {
		s.commit()
		return
	}
	s.ClearFrame()
}

// Nudge moves the selection by (dx, dy). A grounded selection moves as a
// marquee only. Returns false when nothing is selected.
func (s *Session) Nudge(dx, dy int) bool {
	if !s.sel.Active() {
		return false
	}
	s.sel.Nudge(dx, dy)
	return true
}

// SelectAll grounds the selection on the whole frame and switches to the
// select tool.
func (s *Session) SelectAll() {
	s.anchor()
	s.tool = Select
	s.sel.SelectAll(s.frame())
}

// Deselect anchors a floating selection and drops the selection.
func (s *Session) Deselect() {
	s.anchor()
	s.sel.Clear()
}

// --- Frames ---

// AddFrame appends an empty frame and makes it active.
func (s *Session) AddFrame() {
	if len(s.frames) > 0 {
		s.anchor()
	}
	s.frames = append(s.frames, pixel.New(s.width, s.height))
	s.current = len(s.frames) - 1
	s.commit()
}

// DuplicateFrame appends a copy of the active frame and makes it active.
func (s *Session) DuplicateFrame() {
	s.anchor()
	s.frames = append(s.frames, s.frame().Clone())
	s.current = len(s.frames) - 1
	s.commit()
}

// DeleteFrame removes the active frame.
func (s *Session) DeleteFrame() error {
	if len(s.frames) <= 1 {
		return ErrLastFrame
	}
	s.sel.Clear()
	s.frames = append(s.frames[:s.current], s.frames[s.current+1:]...)
	if s.current >= len(s.frames) {
		s.current--
	}
	s.commit()
	return nil
}

// SelectFrame makes frame i active. Returns false if i is out of range.
func (s *Session) SelectFrame(i int) bool {
	if i < 0 || i >= len(s.frames) {
		return false
	}
	if i != s.current {
		s.anchor()
		s.current = i
	}
	return true
}

// ClearFrame erases the active frame.
func (s *Session) ClearFrame() {
	s.sel.Clear()
	s.frame().Clear()
	s.commit()
}

// Resize replaces the canvas with an empty n x n one.
// Frames, history, selection and clipboard are discarded.
func (s *Session) Resize(n int) error {
	if n < s.opts.MinSize || n > s.opts.MaxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSizeOutOfRange, n, s.opts.MinSize, s.opts.MaxSize)
	}
	s.width, s.height = n, n
	s.frames = nil
	s.current = 0
	s.history.Reset()
	s.sel.Clear()
	s.clipboard = nil
	s.drawing = false
	s.AddFrame()
	return nil
}

// ImportFrame replaces the active frame with img, which must match the
// canvas size.
func (s *Session) ImportFrame(img *pixel.Buffer) error {
	if img == nil || img.W != s.width || img.H != s.height {
		return fmt.Errorf("editor: import must be %dx%d", s.width, s.height)
	}
	s.sel.Clear()
	s.frames[s.current] = img.Clone()
	s.commit()
	return nil
}

// --- Palette ---

// AddSwatch appends a white swatch.
func (s *Session) AddSwatch() {
	s.palette = s.palette.Add()
	s.touch()
}

// RemoveSwatch deletes swatch i. The last swatch is kept.
func (s *Session) RemoveSwatch(i int) bool {
	p, ok := s.palette.Remove(i)
	if ok {
		s.palette = p
		s.touch()
	}
	return ok
}

// MoveSwatch reorders the palette.
func (s *Session) MoveSwatch(from, to int) {
	s.palette = s.palette.Move(from, to)
	s.touch()
}

// SetSwatch replaces swatch i with hex.
func (s *Session) SetSwatch(i int, hex string) error {
	p, ok := s.palette.Set(i, hex)
	if !ok {
		return fmt.Errorf("%w: swatch %d = %q", ErrInvalidColor, i, hex)
	}
	s.palette = p
	s.touch()
	return nil
}

// PickSwatch makes swatch i the drawing color and switches to the pen.
func (s *Session) PickSwatch(i int) bool {
	if i < 0 || i >= len(s.palette) {
		return false
	}
	s.color = s.palette[i]
	s.SetTool(Pen)
	return true
}
