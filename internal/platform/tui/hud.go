package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sprite/internal/editor"
)

// renderTitle draws the one-line header above the canvas.
func (m EditorModel) renderTitle() string {
	th := m.opts.Theme
	s := m.session

	name := m.opts.Name
	if name == "" {
		name = "untitled"
	}
	if m.Dirty() {
		name += "*"
	}

	frame := s.CurrentIndex()
	state := ""
	if s.Playing() {
		frame = m.playIndex
		state = " ▶"
	}

	sep := th.HUDSeparator.Render(" │ ")
	parts := []string{
		th.HUDTitle.Render(name),
		th.HUDValue.Render(fmt.Sprintf("%dx%d", s.Width(), s.Height())),
		th.HUDValue.Render(fmt.Sprintf("frame %d/%d", frame+1, s.FrameCount())),
		th.HUDValue.Render(fmt.Sprintf("%d fps%s", s.FPS(), state)),
	}
	return strings.Join(parts, sep)
}

// renderSidebar draws tools, color, brush and palette next to the canvas.
func (m EditorModel) renderSidebar() string {
	th := m.opts.Theme
	s := m.session

	var b strings.Builder

	b.WriteString(th.HUDLabel.Render("Tools"))
	b.WriteString("\n")
	for _, t := range editor.Tools {
		line := fmt.Sprintf("%c %s", t.Shortcut(), t)
		if t == s.Tool() {
			b.WriteString(th.HUDActive.Render("> " + line))
		} else {
			b.WriteString(th.HUDValue.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(s.Color())).Render("    ")
	b.WriteString(th.HUDLabel.Render("Color ") + swatch + " " + th.HUDValue.Render(s.Color()))
	b.WriteString("\n")
	b.WriteString(th.HUDLabel.Render("Brush ") + th.HUDValue.Render(fmt.Sprintf("%d", s.Brush())))
	b.WriteString("\n")
	b.WriteString(th.HUDLabel.Render("Mirror ") + th.HUDValue.Render(mirrorLabel(s)))
	b.WriteString("\n")
	b.WriteString(th.HUDLabel.Render("Select ") + th.HUDValue.Render(s.Selection().State.String()))
	b.WriteString("\n")
	b.WriteString(th.HUDLabel.Render("Undo ") + flag(th, s.CanUndo()) +
		th.HUDLabel.Render("  Redo ") + flag(th, s.CanRedo()))
	b.WriteString("\n\n")

	b.WriteString(th.HUDLabel.Render("Palette"))
	b.WriteString("\n")
	for i, hex := range s.Palette() {
		chip := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		marker := " "
		if i == m.swatch {
			marker = th.HUDActive.Render(">")
		}
		num := " "
		if i < 9 {
			num = fmt.Sprintf("%d", i+1)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s", marker, th.HUDLabel.Render(num), chip, th.HUDValue.Render(hex)))
		b.WriteString("\n")
	}

	return b.String()
}

func mirrorLabel(s *editor.Session) string {
	m := s.Mirror()
	switch {
	case m.X && m.Y:
		return "x+y"
	case m.X:
		return "x"
	case m.Y:
		return "y"
	default:
		return "off"
	}
}

func flag(th Theme, on bool) string {
	if on {
		return th.HUDActive.Render("yes")
	}
	return th.HUDLabel.Render("no")
}
