package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-sprite/internal/colors"
)

//go:embed defaults/editor.yaml
var defaultEditorYAML []byte

// DefaultEditorConfig returns the default editor configuration.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		Canvas: CanvasConfig{
			Width:   32,
			Height:  32,
			MinSize: 8,
			MaxSize: 64,
		},
		Animation: AnimationConfig{
			FPS: 8,
		},
		Brush: BrushConfig{
			Size:    1,
			MaxSize: 8,
		},
		History: HistoryConfig{
			Capacity: 50,
		},
		Palette: colors.DefaultPalette(),
		View: ViewConfig{
			ShowGrid:  true,
			OnionSkin: false,
			Theme:     "default",
		},
		Autosave: AutosaveConfig{
			Enabled: true,
		},
	}
}
