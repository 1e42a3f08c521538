package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sprite/internal/export"
	"github.com/vovakirdan/tui-sprite/internal/registry"
	"github.com/vovakirdan/tui-sprite/internal/storage"
)

var (
	flagFormat string
	flagOut    string
	flagFrame  int
	flagScale  int
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a sprite as PNG, sprite sheet or animated GIF",
	Long: `Export a saved sprite to an image file.

Formats (see 'sprite formats'):
  png    - One frame (--frame, 1-based)
  sheet  - All frames left to right
  gif    - Animated at the sprite's frame rate

Examples:
  sprite export hero
  sprite export hero --format gif --scale 8
  sprite export hero --format png --frame 3 --out hero-3.png
  sprite export hero --format sheet --out - > sheet.png`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", "png", "Export format id")
	exportCmd.Flags().StringVar(&flagOut, "out", "", "Output file, - for stdout (default: <name><ext>)")
	exportCmd.Flags().IntVar(&flagFrame, "frame", 1, "Frame to export for single-frame formats (1-based)")
	exportCmd.Flags().IntVar(&flagScale, "scale", 1, fmt.Sprintf("Pixel scale factor (1-%d)", export.MaxScale))
}

func runExport(_ *cobra.Command, args []string) {
	name := args[0]

	exporter, err := registry.Create(flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sprite formats' to see available formats.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStore()
	doc, err := store.LoadDocument(name)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		fail("no sprite named %q. Run 'sprite list' to see saved sprites.", name)
	}
	if err != nil {
		fail("loading sprite: %v", err)
	}

	out := flagOut
	if out == "" {
		out = name + exporter.Extension()
	}

	opts := registry.Options{Frame: flagFrame - 1, Scale: flagScale}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, createErr := os.Create(out)
		if createErr != nil {
			fail("creating %s: %v", out, createErr)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, flagFormat, doc, opts); err != nil {
		if out != "-" {
			os.Remove(out)
		}
		fail("exporting %s: %v", name, err)
	}

	logger.Info("exported sprite",
		"sprite", name,
		"format", flagFormat,
		"frames", len(doc.Frames),
		"out", out,
	)
}
