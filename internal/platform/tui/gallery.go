package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sprite/internal/storage"
)

// SpriteLister is the part of the store the gallery needs.
type SpriteLister interface {
	ListSprites() ([]storage.SpriteInfo, error)
}

// GalleryKeyMap defines the key bindings for the sprite gallery.
type GalleryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GalleryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GalleryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Back, k.Quit},
	}
}

// DefaultGalleryKeyMap returns default key bindings.
func DefaultGalleryKeyMap() GalleryKeyMap {
	return GalleryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GalleryModel lists saved sprites in a table and lets the user pick one.
type GalleryModel struct {
	sprites  []storage.SpriteInfo
	loadErr  error
	table    table.Model
	help     help.Model
	keys     GalleryKeyMap
	width    int
	height   int
	selected string
	quitting bool
}

// NewGalleryModel loads the sprite list from store.
func NewGalleryModel(store SpriteLister, width, height int) GalleryModel {
	h := help.New()
	h.ShowAll = false

	m := GalleryModel{
		keys:   DefaultGalleryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	if store != nil {
		m.sprites, m.loadErr = store.ListSprites()
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the window.
func (m *GalleryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Size", Width: 8},
		{Title: "Frames", Width: 7},
		{Title: "FPS", Width: 4},
		{Title: "Updated", Width: 14},
	}

	if w := m.width - 4 - 8 - 7 - 4 - 14 - 10; w > columns[0].Width {
		columns[0].Width = w
	}

	height := m.height - 6
	if height < 3 {
		height = 10
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded sprites.
func (m *GalleryModel) updateTableRows() {
	m.table.SetRows(SpriteRows(m.sprites))
	m.table.GotoTop()
}

// SpriteRows formats sprites as table rows. Shared with the list command.
func SpriteRows(sprites []storage.SpriteInfo) []table.Row {
	rows := make([]table.Row, len(sprites))
	for i, s := range sprites {
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			s.Name,
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			fmt.Sprintf("%d", s.Frames),
			fmt.Sprintf("%d", s.FPS),
			updated,
		}
	}
	return rows
}

// Init initializes the gallery model.
func (m GalleryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the gallery.
func (m GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if row := m.table.SelectedRow(); row != nil {
				m.selected = row[0]
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the gallery.
func (m GalleryModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("SPRITES (%d)", len(m.sprites))))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m GalleryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if m.loadErr != nil {
		return emptyStyle.Render("Could not load sprites:\n" + m.loadErr.Error())
	}
	if len(m.sprites) == 0 {
		return emptyStyle.Render("No sprites saved yet.\nRun `sprite edit <name>` to draw one!")
	}
	return m.table.View()
}

// Selected returns the sprite the user chose, or "" if they quit.
func (m GalleryModel) Selected() string {
	return m.selected
}

// RunGallery shows the gallery and returns the chosen sprite name.
// An empty name means the user quit without choosing.
func RunGallery(store SpriteLister, width, height int) (string, error) {
	model := NewGalleryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(GalleryModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
