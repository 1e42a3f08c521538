// Package config provides YAML-based editor configuration loading.
package config

import (
	"github.com/vovakirdan/tui-sprite/internal/colors"
	"github.com/vovakirdan/tui-sprite/internal/core"
	"github.com/vovakirdan/tui-sprite/internal/editor"
)

// EditorConfig contains all configuration for the sprite editor.
type EditorConfig struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Animation AnimationConfig `yaml:"animation"`
	Brush     BrushConfig     `yaml:"brush"`
	History   HistoryConfig   `yaml:"history"`
	Palette   []string        `yaml:"palette"`
	View      ViewConfig      `yaml:"view"`
	Autosave  AutosaveConfig  `yaml:"autosave"`
}

// CanvasConfig defines the initial canvas and the allowed resize range.
type CanvasConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

// AnimationConfig defines playback parameters.
type AnimationConfig struct {
	FPS int `yaml:"fps"` // 1..24
}

// BrushConfig defines the brush kernel.
type BrushConfig struct {
	Size    int `yaml:"size"`
	MaxSize int `yaml:"max_size"`
}

// HistoryConfig defines the undo stack.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"` // Snapshots kept before the oldest is evicted
}

// ViewConfig defines display toggles.
type ViewConfig struct {
	ShowGrid  bool   `yaml:"show_grid"`
	OnionSkin bool   `yaml:"onion_skin"`
	Theme     string `yaml:"theme"` // "default", "neon" or "mono"
}

// AutosaveConfig controls persistence after each edit.
type AutosaveConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Known theme names.
var Themes = []string{"default", "neon", "mono"}

// Validate repairs out-of-range values in place rather than failing, so a
// bad config file still yields a usable editor.
func (c *EditorConfig) Validate() {
	d := DefaultEditorConfig()

	if c.Canvas.MinSize <= 0 {
		c.Canvas.MinSize = d.Canvas.MinSize
	}
	if c.Canvas.MaxSize < c.Canvas.MinSize {
		c.Canvas.MaxSize = core.Max(d.Canvas.MaxSize, c.Canvas.MinSize)
	}
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = d.Canvas.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = d.Canvas.Height
	}
	c.Canvas.Width = core.Clamp(c.Canvas.Width, c.Canvas.MinSize, c.Canvas.MaxSize)
	c.Canvas.Height = core.Clamp(c.Canvas.Height, c.Canvas.MinSize, c.Canvas.MaxSize)

	if c.Animation.FPS == 0 {
		c.Animation.FPS = d.Animation.FPS
	}
	c.Animation.FPS = core.Clamp(c.Animation.FPS, editor.MinFPS, editor.MaxFPS)

	if c.Brush.MaxSize <= 0 {
		c.Brush.MaxSize = d.Brush.MaxSize
	}
	c.Brush.Size = core.Clamp(c.Brush.Size, 1, c.Brush.MaxSize)

	if c.History.Capacity <= 0 {
		c.History.Capacity = d.History.Capacity
	}

	c.Palette = colors.NewPalette(c.Palette)

	known := false
	for _, t := range Themes {
		if c.View.Theme == t {
			known = true
			break
		}
	}
	if !known {
		c.View.Theme = d.View.Theme
	}
}

// Options converts the configuration into session options.
func (c EditorConfig) Options() editor.Options {
	return editor.Options{
		Width:           c.Canvas.Width,
		Height:          c.Canvas.Height,
		MinSize:         c.Canvas.MinSize,
		MaxSize:         c.Canvas.MaxSize,
		FPS:             c.Animation.FPS,
		Brush:           c.Brush.Size,
		MaxBrush:        c.Brush.MaxSize,
		HistoryCapacity: c.History.Capacity,
		Palette:         colors.NewPalette(c.Palette),
		ShowGrid:        c.View.ShowGrid,
		OnionSkin:       c.View.OnionSkin,
	}
}
