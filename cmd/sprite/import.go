package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/config"
	"github.com/vovakirdan/tui-sprite/internal/export"
	"github.com/vovakirdan/tui-sprite/internal/platform/tui"
)

var (
	flagImportFrame int
	flagAppend      bool
)

var importCmd = &cobra.Command{
	Use:   "import <name> <image>",
	Short: "Load an image file into a sprite frame",
	Long: `Decode a PNG, GIF or JPEG file, scale it to the sprite's canvas with
nearest-neighbour sampling and replace a frame with it. Near-white pixels
become transparent. A sprite that does not exist yet is created with the
canvas size from the editor config.

Examples:
  sprite import hero ./sketch.png
  sprite import hero ./walk-2.png --frame 2
  sprite import hero ./walk-3.png --append`,
	Args: cobra.ExactArgs(2),
	Run:  runImport,
}

func init() {
	importCmd.Flags().IntVar(&flagImportFrame, "frame", 1, "Frame to replace (1-based)")
	importCmd.Flags().BoolVar(&flagAppend, "append", false, "Add a new frame instead of replacing one")
}

func runImport(_ *cobra.Command, args []string) {
	name, path := args[0], args[1]

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	f, err := os.Open(path)
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()

	store := openStore()
	defer store.Close()

	s := tui.LoadSession(store, name, cfg.Options(), logger)

	if flagAppend {
		s.AddFrame()
	} else if !s.SelectFrame(flagImportFrame - 1) {
		store.Close()
		fail("sprite %q has no frame %d (it has %d)", name, flagImportFrame, s.FrameCount())
	}

	buf, err := export.Decode(f, s.Width(), s.Height())
	if err != nil {
		store.Close()
		fail("importing %s: %v", path, err)
	}
	if err := s.ImportFrame(buf); err != nil {
		store.Close()
		fail("importing %s: %v", path, err)
	}

	if err := store.SaveDocument(name, s.Document()); err != nil {
		store.Close()
		fail("saving sprite: %v", err)
	}

	logger.Info("imported image",
		"sprite", name,
		"path", path,
		"frame", s.CurrentIndex()+1,
		"frames", s.FrameCount(),
	)
}
