package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// EditorKeyMap defines the key bindings for the editor.
// Tool shortcuts are single lowercase letters handled separately through
// editor.ToolForKey, so none of the bindings below use them.
type EditorKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Click key.Binding // Press or release the keyboard pointer

	Undo       key.Binding
	Redo       key.Binding
	Copy       key.Binding
	Cut        key.Binding
	Paste      key.Binding
	Delete     key.Binding
	SelectAll  key.Binding
	Escape     key.Binding
	BrushUp    key.Binding
	BrushDown  key.Binding
	MirrorX    key.Binding
	MirrorY    key.Binding
	Grid       key.Binding
	OnionSkin  key.Binding
	Play       key.Binding
	FPSUp      key.Binding
	FPSDown    key.Binding
	NextFrame  key.Binding
	PrevFrame  key.Binding
	AddFrame   key.Binding
	DupFrame   key.Binding
	DelFrame   key.Binding
	NextSwatch key.Binding
	AddSwatch  key.Binding
	DelSwatch  key.Binding
	MoveSwatch key.Binding
	SetSwatch  key.Binding
	Color      key.Binding
	Resize     key.Binding
	Import     key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Undo, k.Redo, k.Color, k.Play, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Click, k.Escape},
		{k.Undo, k.Redo, k.Copy, k.Cut, k.Paste, k.Delete, k.SelectAll},
		{k.BrushUp, k.BrushDown, k.MirrorX, k.MirrorY, k.Grid, k.OnionSkin},
		{k.Play, k.FPSUp, k.FPSDown, k.NextFrame, k.PrevFrame, k.AddFrame, k.DupFrame, k.DelFrame},
		{k.NextSwatch, k.AddSwatch, k.DelSwatch, k.MoveSwatch, k.SetSwatch, k.Color},
		{k.Resize, k.Import, k.Save, k.Help, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "cursor/nudge up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "cursor/nudge down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "cursor/nudge left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "cursor/nudge right"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press/release"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("^z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^y", "redo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "paste"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del", "delete/clear"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "select all"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		BrushUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "brush +"),
		),
		BrushDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "brush -"),
		),
		MirrorX: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "mirror x"),
		),
		MirrorY: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "mirror y"),
		),
		Grid: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grid"),
		),
		OnionSkin: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "onion skin"),
		),
		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/stop"),
		),
		FPSUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "fps +"),
		),
		FPSDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "fps -"),
		),
		NextFrame: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "next frame"),
		),
		PrevFrame: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "prev frame"),
		),
		AddFrame: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "new frame"),
		),
		DupFrame: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "duplicate frame"),
		),
		DelFrame: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete frame"),
		),
		NextSwatch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next swatch"),
		),
		AddSwatch: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add swatch"),
		),
		DelSwatch: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove swatch"),
		),
		MoveSwatch: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "move swatch right"),
		),
		SetSwatch: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "swatch := color"),
		),
		Color: key.NewBinding(
			key.WithKeys("#"),
			key.WithHelp("#", "hex color"),
		),
		Resize: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "resize"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import image"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
