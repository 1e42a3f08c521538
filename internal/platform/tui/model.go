package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/export"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

// Canvas position inside the view: one title row plus the border.
const (
	canvasOriginX = 1
	canvasOriginY = 2
)

// promptKind is what the text input is currently asking for.
type promptKind int

const (
	promptNone promptKind = iota
	promptColor
	promptResize
	promptImport
)

func (p promptKind) label() string {
	switch p {
	case promptColor:
		return "hex color"
	case promptResize:
		return "canvas size"
	case promptImport:
		return "image path"
	default:
		return ""
	}
}

// savedMsg reports the outcome of an asynchronous save.
type savedMsg struct {
	rev uint64
	err error
}

// Options configures an EditorModel.
type Options struct {
	// Name is the sprite name used as the storage key.
	Name string

	// Store receives autosaves. May be nil to edit without persistence.
	Store editor.DocumentStore

	// Autosave saves after every committed change when true.
	Autosave bool

	// Theme selects the color scheme.
	Theme Theme

	// Logger receives save failures. Nil discards.
	Logger *log.Logger
}

// EditorModel is the Bubble Tea model for one sprite editing session.
type EditorModel struct {
	session *editor.Session
	opts    Options
	logger  *log.Logger
	keys    EditorKeyMap
	help    help.Model
	input   textinput.Model
	prompt  promptKind

	cursor    core.Point // Keyboard pointer
	kbDown    bool       // Keyboard pointer pressed
	mouseDown bool
	swatch    int

	savedRev  uint64
	failedRev uint64 // Revision whose save failed; retried after the next change
	saving    bool

	playStart time.Time
	playIndex int

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// NewEditorModel creates a model around an existing session.
func NewEditorModel(s *editor.Session, opts Options) EditorModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if opts.Theme.CheckerLight == "" {
		opts.Theme = DefaultTheme()
	}

	h := help.New()
	h.ShowAll = false

	in := textinput.New()
	in.CharLimit = 256
	in.Width = 32

	return EditorModel{
		session:  s,
		opts:     opts,
		logger:   logger,
		keys:     DefaultEditorKeyMap(),
		help:     h,
		input:    in,
		cursor:   core.Pt(s.Width()/2, s.Height()/2),
		savedRev: s.Revision(),
	}
}

// Session returns the edited session.
func (m EditorModel) Session() *editor.Session {
	return m.session
}

// Init initializes the model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			m, cmd = m.handlePromptKey(msg)
		} else {
			m, cmd = m.handleKey(msg)
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case PlayTickMsg:
		if !m.session.Playing() {
			return m, nil
		}
		m.playIndex = m.session.PlaybackIndex(time.Since(m.playStart))
		return m, playTickCmd(m.session.FPS())

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.logger.Error("autosave failed", "sprite", m.opts.Name, "error", msg.err)
			m.setError(fmt.Errorf("save failed: %w", msg.err))
			m.failedRev = msg.rev
		} else if msg.rev > m.savedRev {
			m.savedRev = msg.rev
		}
	}

	if m.quitting {
		return m, cmd
	}
	save := m.autosaveCmd()
	return m, tea.Batch(cmd, save)
}

// autosaveCmd starts a background save when the session has changed since
// the last one. Only one save runs at a time.
func (m *EditorModel) autosaveCmd() tea.Cmd {
	rev := m.session.Revision()
	if !m.opts.Autosave || m.opts.Store == nil || m.saving || rev == m.savedRev || rev == m.failedRev {
		return nil
	}
	m.saving = true
	return saveCmd(m.opts.Store, m.opts.Name, m.session)
}

// saveCmd snapshots the session now and writes it off the update loop.
func saveCmd(store editor.DocumentStore, name string, s *editor.Session) tea.Cmd {
	doc := s.Document()
	rev := s.Revision()
	return func() tea.Msg {
		return savedMsg{rev: rev, err: store.SaveDocument(name, doc)}
	}
}

// Flush saves synchronously if anything is unsaved.
func (m *EditorModel) Flush() error {
	if m.opts.Store == nil || m.session.Revision() == m.savedRev {
		return nil
	}
	if err := m.opts.Store.SaveDocument(m.opts.Name, m.session.Document()); err != nil {
		return err
	}
	m.savedRev = m.session.Revision()
	return nil
}

// Dirty reports whether the session has unsaved changes.
func (m EditorModel) Dirty() bool {
	return m.session.Revision() != m.savedRev
}

// handleKey processes keyboard input outside of prompts.
func (m EditorModel) handleKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	s := m.session
	m.status, m.statusErr = "", false

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.opts.Autosave {
			if err := m.Flush(); err != nil {
				m.logger.Error("save on quit failed", "sprite", m.opts.Name, "error", err)
			}
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Escape):
		if m.kbDown || m.mouseDown {
			s.Cancel()
			m.kbDown, m.mouseDown = false, false
		} else {
			s.Deselect()
		}

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Click):
		m.keyboardClick()

	case key.Matches(msg, m.keys.Undo):
		if !s.Undo() {
			m.setStatus("nothing to undo")
		}
	case key.Matches(msg, m.keys.Redo):
		if !s.Redo() {
			m.setStatus("nothing to redo")
		}
	case key.Matches(msg, m.keys.Copy):
		s.Copy()
		m.setStatus("copied")
	case key.Matches(msg, m.keys.Cut):
		s.Cut()
		m.setStatus("cut")
	case key.Matches(msg, m.keys.Paste):
		if !s.Paste() {
			m.setStatus("clipboard is empty")
		}
	case key.Matches(msg, m.keys.Delete):
		s.DeleteSelection()
	case key.Matches(msg, m.keys.SelectAll):
		s.SelectAll()

	case key.Matches(msg, m.keys.BrushUp):
		s.SetBrush(s.Brush() + 1)
	case key.Matches(msg, m.keys.BrushDown):
		s.SetBrush(s.Brush() - 1)
	case key.Matches(msg, m.keys.MirrorX):
		s.ToggleMirrorX()
	case key.Matches(msg, m.keys.MirrorY):
		s.ToggleMirrorY()
	case key.Matches(msg, m.keys.Grid):
		s.ToggleGrid()
	case key.Matches(msg, m.keys.OnionSkin):
		s.ToggleOnionSkin()

	case key.Matches(msg, m.keys.Play):
		s.TogglePlaying()
		if s.Playing() {
			m.playStart = time.Now()
			m.playIndex = s.CurrentIndex()
			return m, playTickCmd(s.FPS())
		}
	case key.Matches(msg, m.keys.FPSUp):
		s.SetFPS(s.FPS() + 1)
	case key.Matches(msg, m.keys.FPSDown):
		s.SetFPS(s.FPS() - 1)

	case key.Matches(msg, m.keys.NextFrame):
		s.SelectFrame((s.CurrentIndex() + 1) % s.FrameCount())
	case key.Matches(msg, m.keys.PrevFrame):
		s.SelectFrame((s.CurrentIndex() - 1 + s.FrameCount()) % s.FrameCount())
	case key.Matches(msg, m.keys.AddFrame):
		s.AddFrame()
	case key.Matches(msg, m.keys.DupFrame):
		s.DuplicateFrame()
	case key.Matches(msg, m.keys.DelFrame):
		if err := s.DeleteFrame(); err != nil {
			m.setError(err)
		}

	case key.Matches(msg, m.keys.NextSwatch):
		m.swatch = (m.swatch + 1) % len(s.Palette())
		s.PickSwatch(m.swatch)
	case key.Matches(msg, m.keys.AddSwatch):
		s.AddSwatch()
		m.swatch = len(s.Palette()) - 1
		//nolint:errcheck // Session color is always valid
		s.SetSwatch(m.swatch, s.Color())
	case key.Matches(msg, m.keys.DelSwatch):
		if !s.RemoveSwatch(m.swatch) {
			m.setStatus("cannot remove the last swatch")
		}
		m.swatch = core.Min(m.swatch, len(s.Palette())-1)
	case key.Matches(msg, m.keys.MoveSwatch):
		to := (m.swatch + 1) % len(s.Palette())
		s.MoveSwatch(m.swatch, to)
		m.swatch = to
	case key.Matches(msg, m.keys.SetSwatch):
		//nolint:errcheck // Session color is always valid
		s.SetSwatch(m.swatch, s.Color())

	case key.Matches(msg, m.keys.Color):
		return m.openPrompt(promptColor, s.Color())
	case key.Matches(msg, m.keys.Resize):
		return m.openPrompt(promptResize, strconv.Itoa(s.Width()))
	case key.Matches(msg, m.keys.Import):
		return m.openPrompt(promptImport, "")

	case key.Matches(msg, m.keys.Save):
		if m.opts.Store == nil {
			m.setStatus("no storage configured")
			break
		}
		if err := m.Flush(); err != nil {
			m.logger.Error("save failed", "sprite", m.opts.Name, "error", err)
			m.setError(err)
		} else {
			m.setStatus("saved " + m.opts.Name)
		}

	default:
		m.handleShortcut(msg)
	}

	return m, nil
}

// handleShortcut selects tools by letter and swatches by digit.
func (m *EditorModel) handleShortcut(msg tea.KeyMsg) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return
	}
	r := msg.Runes[0]
	if t, ok := editor.ToolForKey(r); ok {
		m.session.SetTool(t)
		return
	}
	if r >= '1' && r <= '9' {
		i := int(r - '1')
		if m.session.PickSwatch(i) {
			m.swatch = i
		}
	}
}

// moveCursor nudges the selection when one exists, otherwise moves the
// keyboard pointer. A pressed keyboard pointer drags like a mouse.
func (m *EditorModel) moveCursor(dx, dy int) {
	s := m.session
	if !m.kbDown && s.Nudge(dx, dy) {
		return
	}
	m.cursor.X = core.Clamp(m.cursor.X+dx, 0, s.Width()-1)
	m.cursor.Y = core.Clamp(m.cursor.Y+dy, 0, s.Height()-1)
	if m.kbDown {
		s.PointerMove(m.cursor.X, m.cursor.Y)
	}
}

// keyboardClick toggles the keyboard pointer. Gestures that finish on
// press (bucket, picker, additive select) release immediately.
func (m *EditorModel) keyboardClick() {
	s := m.session
	if m.kbDown {
		s.PointerUp(m.cursor.X, m.cursor.Y)
		m.kbDown = false
		return
	}
	s.PointerDown(m.cursor.X, m.cursor.Y, false)
	if s.Drawing() || s.Selection().Dragging {
		m.kbDown = true
		return
	}
	s.PointerUp(m.cursor.X, m.cursor.Y)
}

// handleMouse maps terminal cells to canvas pixels.
func (m EditorModel) handleMouse(msg tea.MouseMsg) EditorModel {
	s := m.session
	x, y, inside := m.canvasCell(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m
		}
		m.cursor = core.Pt(x, y)
		m.mouseDown = true
		s.PointerDown(x, y, msg.Shift || msg.Ctrl)
		if !s.Drawing() && !s.Selection().Dragging {
			s.PointerUp(x, y)
			m.mouseDown = false
		}

	case tea.MouseActionMotion:
		if inside {
			m.cursor = core.Pt(x, y)
		}
		if m.mouseDown {
			s.PointerMove(x, y)
		} else if !inside {
			s.PointerLeave()
		}

	case tea.MouseActionRelease:
		if m.mouseDown {
			s.PointerUp(x, y)
			m.mouseDown = false
		}
	}
	return m
}

// canvasCell converts terminal coordinates to a canvas pixel.
// Coordinates outside the canvas are still converted so drags can leave
// and re-enter; inside reports whether the cell is on the canvas.
func (m EditorModel) canvasCell(tx, ty int) (x, y int, inside bool) {
	cx := tx - canvasOriginX
	x = cx / cellWidth
	if cx < 0 {
		x = core.FloorDiv(cx, cellWidth)
	}
	y = ty - canvasOriginY
	inside = x >= 0 && x < m.session.Width() && y >= 0 && y < m.session.Height()
	return x, y, inside
}

// openPrompt focuses the text input for kind.
func (m EditorModel) openPrompt(kind promptKind, value string) (EditorModel, tea.Cmd) {
	m.prompt = kind
	m.input.Prompt = kind.label() + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// handlePromptKey feeds keys to the text input until enter or esc.
func (m EditorModel) handlePromptKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind, value := m.prompt, strings.TrimSpace(m.input.Value())
		m.closePrompt()
		m.submitPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

// submitPrompt applies a completed prompt.
func (m *EditorModel) submitPrompt(kind promptKind, value string) {
	s := m.session
	switch kind {
	case promptColor:
		if err := s.SetColor(value); err != nil {
			m.setError(err)
		}

	case promptResize:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setError(fmt.Errorf("%w: %q", editor.ErrSizeOutOfRange, value))
			return
		}
		if err := s.Resize(n); err != nil {
			m.setError(err)
			return
		}
		m.cursor = core.Pt(n/2, n/2)
		m.setStatus(fmt.Sprintf("canvas is now %dx%d", n, n))

	case promptImport:
		if err := importFile(s, value); err != nil {
			m.logger.Warn("import failed", "path", value, "error", err)
			m.setError(err)
			return
		}
		m.setStatus("imported " + value)

	case promptNone:
	}
}

// importFile decodes an image file into the active frame.
func importFile(s *editor.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := export.Decode(f, s.Width(), s.Height())
	if err != nil {
		return err
	}
	return s.ImportFrame(buf)
}

func (m *EditorModel) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *EditorModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// View renders the editor.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	th := m.opts.Theme
	s := m.session

	view := buildCanvasView(s, m.playIndex, m.cursor, !s.Playing())
	canvas := th.CanvasBorder.Render(renderCanvas(view, th))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, "  ", m.renderSidebar())

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.prompt != promptNone:
		b.WriteString(m.input.View())
	case m.statusErr:
		b.WriteString(th.StatusError.Render(m.status))
	default:
		b.WriteString(th.StatusText.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(th.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// LoadSession opens the sprite saved under name, or starts a fresh one when
// it does not exist or cannot be loaded. Load failures are logged, not
// returned, so a corrupt save never blocks editing.
func LoadSession(store editor.DocumentStore, name string, opts editor.Options, logger *log.Logger) *editor.Session {
	if store == nil || name == "" {
		return editor.New(opts)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	doc, err := store.LoadDocument(name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("could not load sprite, starting fresh", "sprite", name, "error", err)
		}
		return editor.New(opts)
	}
	s, err := editor.Load(doc, opts)
	if err != nil {
		logger.Warn("saved sprite is invalid, starting fresh", "sprite", name, "error", err)
		return editor.New(opts)
	}
	logger.Info("loaded sprite", "sprite", name, "frames", s.FrameCount(), "size", fmt.Sprintf("%dx%d", s.Width(), s.Height()))
	return s
}

// Run starts the Bubble Tea program for one sprite and blocks until the
// user quits. Returns the final model so callers can inspect the session.
func Run(s *editor.Session, opts Options) (EditorModel, error) {
	model := NewEditorModel(s, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover cursor and drag strokes
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(EditorModel); ok {
		model = m
	}
	if opts.Autosave {
		if err := model.Flush(); err != nil {
			return model, err
		}
	}
	return model, nil
}
