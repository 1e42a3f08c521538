package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/selection"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

// memStore is an in-memory editor.DocumentStore.
type memStore struct {
	docs  map[string]editor.Document
	saves int
	err   error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]editor.Document)}
}

func (s *memStore) SaveDocument(name string, doc editor.Document) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.docs[name] = doc
	return nil
}

func (s *memStore) LoadDocument(name string) (editor.Document, error) {
	doc, ok := s.docs[name]
	if !ok {
		return editor.Document{}, fmt.Errorf("%w: %q", storage.ErrNotFound, name)
	}
	return doc, nil
}

func newModel(t *testing.T, opts Options) EditorModel {
	t.Helper()
	return NewEditorModel(editor.New(editor.DefaultOptions()), opts)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// send feeds msg to the model and returns the new model with its command.
func send(m EditorModel, msg tea.Msg) (EditorModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(EditorModel), cmd
}

// collect runs cmd and returns every message it produces, expanding batches.
// Ticks are skipped so tests never sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func savedMessages(cmd tea.Cmd) []savedMsg {
	var out []savedMsg
	for _, msg := range collect(cmd) {
		if sm, ok := msg.(savedMsg); ok {
			out = append(out, sm)
		}
	}
	return out
}

func TestToolShortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want editor.Tool
	}{
		{'s', editor.Select},
		{'e', editor.Eraser},
		{'b', editor.Bucket},
		{'l', editor.Line},
		{'r', editor.Rect},
		{'c', editor.Circle},
		{'u', editor.Lighten},
		{'d', editor.Darken},
		{'i', editor.Picker},
		{'p', editor.Pen},
	}

	m := newModel(t, Options{})
	for _, tt := range tests {
		m, _ = send(m, runeKey(tt.key))
		if got := m.Session().Tool(); got != tt.want {
			t.Errorf("key %q: tool = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestSwatchDigits(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('l'))
	m, _ = send(m, runeKey('3'))

	s := m.Session()
	if s.Color() != "#ff0000" {
		t.Errorf("Color() = %s, expected #ff0000", s.Color())
	}
	if s.Tool() != editor.Pen {
		t.Errorf("picking a swatch should switch to the pen, got %v", s.Tool())
	}
	if m.swatch != 2 {
		t.Errorf("swatch = %d, expected 2", m.swatch)
	}

	// Out of range digits are ignored.
	m, _ = send(m, runeKey('9'))
	if m.swatch != 2 || s.Color() != "#ff0000" {
		t.Errorf("digit past the palette changed state: swatch %d color %s", m.swatch, s.Color())
	}
}

func TestKeyboardStroke(t *testing.T) {
	m := newModel(t, Options{})
	s := m.Session()
	start := m.cursor

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.kbDown {
		t.Fatal("enter should press the keyboard pointer for the pen")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.kbDown {
		t.Fatal("second enter should release the pointer")
	}

	for dx := 0; dx <= 2; dx++ {
		if !s.CurrentFrame().At(start.X+dx, start.Y).Visible() {
			t.Errorf("pixel (%d,%d) not painted", start.X+dx, start.Y)
		}
	}
	if !s.CanUndo() {
		t.Fatal("stroke should be undoable")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if n := s.CurrentFrame().VisibleCount(); n != 0 {
		t.Errorf("after undo %d pixels remain", n)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.status != "nothing to undo" {
		t.Errorf("status = %q", m.status)
	}
}

func TestKeyboardClickBucketReleases(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('b'))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.kbDown {
		t.Error("bucket fill should release immediately")
	}
	s := m.Session()
	if n := s.CurrentFrame().VisibleCount(); n != s.Width()*s.Height() {
		t.Errorf("bucket filled %d pixels, expected the whole frame", n)
	}
}

func TestCursorClampsToCanvas(t *testing.T) {
	m := newModel(t, Options{})
	for i := 0; i < 40; i++ {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.cursor != core.Pt(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", m.cursor)
	}
}

func TestArrowsNudgeSelection(t *testing.T) {
	m := newModel(t, Options{})
	s := m.Session()
	s.PointerDown(4, 4, false)
	s.PointerUp(4, 4)

	m, _ = send(m, runeKey('s'))
	s.PointerDown(4, 4, false)
	s.PointerMove(4, 4)
	s.PointerUp(4, 4)
	cursor := m.cursor

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != cursor {
		t.Errorf("cursor moved to %v while a selection was active", m.cursor)
	}
	if sel := s.Selection(); sel.Rect.X != 5 {
		t.Errorf("selection x = %d, expected 5", sel.Rect.X)
	}

	if sel := s.Selection(); sel.State != selection.Grounded {
		t.Errorf("state = %v, arrows should move the marquee only", sel.State)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if s.Selection().State != selection.Empty {
		t.Error("esc should drop the selection")
	}
	if !s.CurrentFrame().At(4, 4).Visible() || s.CurrentFrame().At(5, 4).Visible() {
		t.Error("frame pixels should not move with the marquee")
	}
}

func TestEscCancelsShape(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('r'))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.kbDown {
		t.Error("esc should release the pointer")
	}
	if n := m.Session().CurrentFrame().VisibleCount(); n != 0 {
		t.Errorf("cancelled rect left %d pixels", n)
	}
}

func TestColorPrompt(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('#'))
	if m.prompt != promptColor {
		t.Fatalf("prompt = %v, expected color prompt", m.prompt)
	}

	m.input.SetValue(" #FF8800 ")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt != promptNone {
		t.Error("enter should close the prompt")
	}
	if got := m.Session().Color(); got != "#ff8800" {
		t.Errorf("Color() = %s, expected #ff8800", got)
	}

	m, _ = send(m, runeKey('#'))
	m.input.SetValue("orange")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr {
		t.Error("invalid color should set an error status")
	}
	if got := m.Session().Color(); got != "#ff8800" {
		t.Errorf("invalid input changed color to %s", got)
	}
}

func TestPromptEscKeepsState(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('R'))
	m.input.SetValue("16")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.prompt != promptNone {
		t.Error("esc should close the prompt")
	}
	if m.Session().Width() != 32 {
		t.Errorf("esc applied the prompt: width %d", m.Session().Width())
	}
}

func TestResizePrompt(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"16", 16, false},
		{"abc", 32, true},
		{"4", 32, true},
		{"65", 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m := newModel(t, Options{})
			m, _ = send(m, runeKey('R'))
			m.input.SetValue(tt.value)
			m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

			s := m.Session()
			if s.Width() != tt.want || s.Height() != tt.want {
				t.Errorf("size = %dx%d, expected %d", s.Width(), s.Height(), tt.want)
			}
			if m.statusErr != tt.wantErr {
				t.Errorf("statusErr = %v, expected %v (%q)", m.statusErr, tt.wantErr, m.status)
			}
			if !tt.wantErr && m.cursor != core.Pt(8, 8) {
				t.Errorf("cursor = %v, expected recentered", m.cursor)
			}
		})
	}
}

func TestImportPromptMissingFile(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('I'))
	m.input.SetValue(t.TempDir() + "/missing.png")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.statusErr {
		t.Error("importing a missing file should set an error status")
	}
}

func TestFrameKeys(t *testing.T) {
	m := newModel(t, Options{})
	s := m.Session()

	m, _ = send(m, runeKey('f'))
	m, _ = send(m, runeKey('F'))
	if s.FrameCount() != 3 || s.CurrentIndex() != 2 {
		t.Fatalf("frames %d current %d", s.FrameCount(), s.CurrentIndex())
	}

	m, _ = send(m, runeKey('.'))
	if s.CurrentIndex() != 0 {
		t.Errorf("next frame should wrap to 0, got %d", s.CurrentIndex())
	}
	m, _ = send(m, runeKey(','))
	if s.CurrentIndex() != 2 {
		t.Errorf("prev frame should wrap to 2, got %d", s.CurrentIndex())
	}

	m, _ = send(m, runeKey('D'))
	m, _ = send(m, runeKey('D'))
	m, _ = send(m, runeKey('D'))
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, expected 1", s.FrameCount())
	}
	if !m.statusErr || !strings.Contains(m.status, "last frame") {
		t.Errorf("status = %q, expected last frame error", m.status)
	}
}

func TestPaletteKeys(t *testing.T) {
	m := newModel(t, Options{})
	s := m.Session()
	n := len(s.Palette())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.swatch != 1 || s.Color() != "#ffffff" {
		t.Errorf("tab: swatch %d color %s", m.swatch, s.Color())
	}

	m, _ = send(m, runeKey('+'))
	if len(s.Palette()) != n+1 || m.swatch != n {
		t.Errorf("add: %d swatches, selected %d", len(s.Palette()), m.swatch)
	}

	m, _ = send(m, runeKey('-'))
	if len(s.Palette()) != n || m.swatch != n-1 {
		t.Errorf("remove: %d swatches, selected %d", len(s.Palette()), m.swatch)
	}

	m, _ = send(m, runeKey('>'))
	if m.swatch != 0 || s.Palette()[0] != "#ff00ff" {
		t.Errorf("move should wrap the last swatch to the front: %v", s.Palette())
	}
}

func TestPlayback(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, runeKey('f'))

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.Session().Playing() {
		t.Fatal("space should start playback")
	}
	if cmd == nil {
		t.Error("playback should schedule a tick")
	}
	if !strings.Contains(m.View(), "▶") {
		t.Error("title should show the play marker")
	}

	m, cmd = send(m, PlayTickMsg{})
	if cmd == nil {
		t.Error("tick while playing should schedule the next tick")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, cmd = send(m, PlayTickMsg{})
	if cmd != nil {
		t.Error("tick after stopping should not reschedule")
	}
}

func TestCanvasCell(t *testing.T) {
	m := newModel(t, Options{})

	tests := []struct {
		tx, ty     int
		x, y       int
		wantInside bool
	}{
		{1, 2, 0, 0, true},
		{2, 2, 0, 0, true},
		{3, 2, 1, 0, true},
		{64, 33, 31, 31, true},
		{0, 2, -1, 0, false},
		{1, 1, 0, -1, false},
		{65, 2, 32, 0, false},
	}

	for _, tt := range tests {
		x, y, inside := m.canvasCell(tt.tx, tt.ty)
		if x != tt.x || y != tt.y || inside != tt.wantInside {
			t.Errorf("canvasCell(%d,%d) = (%d,%d,%v), expected (%d,%d,%v)",
				tt.tx, tt.ty, x, y, inside, tt.x, tt.y, tt.wantInside)
		}
	}
}

func TestMouseStroke(t *testing.T) {
	m := newModel(t, Options{})
	s := m.Session()

	press := tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(m, press)
	if !m.mouseDown {
		t.Fatal("left press should start a stroke")
	}
	m, _ = send(m, tea.MouseMsg{X: 7, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = send(m, tea.MouseMsg{X: 7, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if m.mouseDown {
		t.Error("release should end the stroke")
	}
	for x := 0; x <= 3; x++ {
		if !s.CurrentFrame().At(x, 0).Visible() {
			t.Errorf("pixel (%d,0) not painted", x)
		}
	}
	if m.cursor != core.Pt(3, 0) {
		t.Errorf("cursor = %v, expected to follow the mouse", m.cursor)
	}

	// Presses outside the canvas are ignored.
	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.mouseDown {
		t.Error("press outside the canvas should not start a stroke")
	}
}

func TestMouseLeave(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = send(m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if _, ok := m.Session().Pointer(); !ok {
		t.Fatal("pointer should be on the canvas after a click")
	}

	m, _ = send(m, tea.MouseMsg{X: 200, Y: 200, Action: tea.MouseActionMotion})
	if _, ok := m.Session().Pointer(); ok {
		t.Error("leaving the canvas should clear the hover state")
	}
	if m.cursor != core.Pt(2, 3) {
		t.Errorf("cursor = %v, expected last on-canvas cell", m.cursor)
	}
}

func TestAutosave(t *testing.T) {
	store := newMemStore()
	m := newModel(t, Options{Name: "hero", Store: store, Autosave: true})

	m, cmd := send(m, runeKey('b'))
	if len(savedMessages(cmd)) != 0 {
		t.Error("switching tools should not save")
	}

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Dirty() {
		t.Fatal("fill should make the model dirty")
	}
	msgs := savedMessages(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d saves, expected 1", len(msgs))
	}
	if _, ok := store.docs["hero"]; !ok {
		t.Fatal("document not written to store")
	}

	// A second change while the first save is in flight waits its turn.
	m, cmd = send(m, runeKey('f'))
	if len(savedMessages(cmd)) != 0 {
		t.Error("second save started while one was in flight")
	}

	m, cmd = send(m, msgs[0])
	if !m.Dirty() {
		t.Error("frame added after the snapshot should keep the model dirty")
	}
	msgs = savedMessages(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d saves after completion, expected 1", len(msgs))
	}
	m, _ = send(m, msgs[0])
	if m.Dirty() {
		t.Error("model should be clean after the last save")
	}
	if got := len(store.docs["hero"].Frames); got != 2 {
		t.Errorf("saved %d frames, expected 2", got)
	}
}

func TestAutosaveDisabled(t *testing.T) {
	store := newMemStore()
	m := newModel(t, Options{Name: "hero", Store: store})

	m, _ = send(m, runeKey('b'))
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(savedMessages(cmd)) != 0 || store.saves != 0 {
		t.Error("autosave off should not write")
	}
}

func TestAutosaveFailure(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk full")
	m := newModel(t, Options{Name: "hero", Store: store, Autosave: true})

	m, _ = send(m, runeKey('b'))
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	msgs := savedMessages(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d saves, expected 1", len(msgs))
	}

	m, _ = send(m, msgs[0])
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Errorf("status = %q, expected save error", m.status)
	}
	if !m.Dirty() {
		t.Error("failed save should leave the model dirty")
	}

	// The failed revision is not retried until something changes.
	m, cmd = send(m, runeKey('g'))
	if len(savedMessages(cmd)) != 0 {
		t.Error("failed revision retried without a new change")
	}
	store.err = nil
	_, cmd = send(m, runeKey('f'))
	if len(savedMessages(cmd)) != 1 {
		t.Error("next change should retry the save")
	}
}

func TestSaveKey(t *testing.T) {
	m := newModel(t, Options{Name: "hero"})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "no storage configured" {
		t.Errorf("status = %q", m.status)
	}

	store := newMemStore()
	m = newModel(t, Options{Name: "hero", Store: store})
	m, _ = send(m, runeKey('f'))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Dirty() || store.saves != 1 {
		t.Errorf("ctrl+s: dirty=%v saves=%d", m.Dirty(), store.saves)
	}
}

func TestQuitFlushes(t *testing.T) {
	store := newMemStore()
	m := newModel(t, Options{Name: "hero", Store: store, Autosave: true})
	m.Session().AddFrame()

	m, cmd := send(m, runeKey('q'))
	if !m.quitting {
		t.Fatal("q should quit")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should not be batched with a save")
	}
	if got := len(store.docs["hero"].Frames); got != 2 {
		t.Errorf("quit saved %d frames, expected 2", got)
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestViewShowsState(t *testing.T) {
	m := newModel(t, Options{Name: "hero"})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 50})

	view := m.View()
	for _, want := range []string{"hero", "32x32", "frame 1/1", "8 fps", "pen", "Palette", "[]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Session().AddFrame()
	if !strings.Contains(m.View(), "hero*") {
		t.Error("dirty sprite should be marked in the title")
	}
}

func TestLoadSession(t *testing.T) {
	opts := editor.DefaultOptions()
	store := newMemStore()

	saved := editor.New(opts)
	saved.AddFrame()
	store.docs["walk"] = saved.Document()
	store.docs["broken"] = editor.Document{Width: 4, Height: 4, Frames: [][]byte{{1, 2, 3}}}

	tests := []struct {
		name       string
		store      editor.DocumentStore
		wantFrames int
	}{
		{"walk", store, 2},
		{"missing", store, 1},
		{"broken", store, 1},
		{"walk", nil, 1},
		{"", store, 1},
	}

	for _, tt := range tests {
		s := LoadSession(tt.store, tt.name, opts, nil)
		if s == nil {
			t.Fatalf("LoadSession(%q) returned nil", tt.name)
		}
		if s.FrameCount() != tt.wantFrames {
			t.Errorf("LoadSession(%q) has %d frames, expected %d", tt.name, s.FrameCount(), tt.wantFrames)
		}
	}
}
