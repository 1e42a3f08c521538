package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sprite/internal/config"
	"github.com/vovakirdan/tui-sprite/internal/platform/tui"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

var editCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Open the editor on a sprite",
	Long: `Open the sprite editor. The sprite is loaded from the database when it
exists, otherwise a blank canvas is created using the editor config.
Without a name, a gallery of saved sprites is shown first.

Controls:
  Mouse          - Draw with the active tool (shift+click adds to a selection)
  Arrows/Enter   - Move and press the keyboard pointer
  s p e i b l r c u d - Select, pen, eraser, picker, bucket, line, rect,
                        circle, lighten, darken
  1-9            - Pick a palette swatch
  Ctrl+Z/Ctrl+Y  - Undo/redo
  Space          - Play/stop the animation
  ?              - Show all keys
  Q/Ctrl+C       - Quit (saves when autosave is on)

Examples:
  sprite edit hero
  sprite edit
  sprite edit coin --config ./big-canvas.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEdit,
}

func runEdit(_ *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Open sprite storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sprite database, changes will not be saved", "error", err)
		// Continue without storage - the editor still works
		store = nil
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		if store == nil {
			closeLog()
			fail("a sprite name is required when the database is unavailable")
		}

		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}

		name, err = tui.RunGallery(store, width, height)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		// User quit the gallery
		if name == "" {
			store.Close()
			return
		}
	}

	docs := documentStore(store)
	session := tui.LoadSession(docs, name, cfg.Options(), logger)

	_, runErr := tui.Run(session, tui.Options{
		Name:     name,
		Store:    docs,
		Autosave: cfg.Autosave.Enabled,
		Theme:    tui.ThemeByName(cfg.View.Theme),
		Logger:   logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("editor stopped", "sprite", name, "error", runErr)
		closeLog()
		fail("running editor: %v", runErr)
	}
}
