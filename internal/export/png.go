package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/registry"
)

func init() {
	registry.Register("png", func() registry.Exporter { return pngExporter{} })
	registry.Register("sheet", func() registry.Exporter { return sheetExporter{} })
}

// pngExporter writes a single frame.
type pngExporter struct{}

func (pngExporter) ID() string        { return "png" }
func (pngExporter) Title() string     { return "PNG (single frame)" }
func (pngExporter) Extension() string { return ".png" }

func (pngExporter) Export(w io.Writer, doc editor.Document, opts registry.Options) error {
	img, err := frameImage(doc, opts.Frame)
	if err != nil {
		return err
	}
	if err := png.Encode(w, upscale(img, scaleFactor(opts))); err != nil {
		return fmt.Errorf("export: cannot encode png: %w", err)
	}
	return nil
}

// sheetExporter lays every frame out left to right in one PNG.
type sheetExporter struct{}

func (sheetExporter) ID() string        { return "sheet" }
func (sheetExporter) Title() string     { return "PNG sprite sheet" }
func (sheetExporter) Extension() string { return ".png" }

func (sheetExporter) Export(w io.Writer, doc editor.Document, opts registry.Options) error {
	sheet := image.NewNRGBA(image.Rect(0, 0, doc.Width*len(doc.Frames), doc.Height))
	for i := range doc.Frames {
		img, err := frameImage(doc, i)
		if err != nil {
			return err
		}
		r := image.Rect(i*doc.Width, 0, (i+1)*doc.Width, doc.Height)
		draw.Draw(sheet, r, img, image.Point{}, draw.Src)
	}
	if err := png.Encode(w, upscale(sheet, scaleFactor(opts))); err != nil {
		return fmt.Errorf("export: cannot encode sheet: %w", err)
	}
	return nil
}
