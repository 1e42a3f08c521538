package export

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/registry"
)

func init() {
	registry.Register("gif", func() registry.Exporter { return gifExporter{} })
}

// alphaCutoff is the alpha below which a pixel becomes the transparent index.
const alphaCutoff = 128

// gifExporter writes an endlessly looping animation at the document FPS.
// Index 0 of the shared palette is transparent.
type gifExporter struct{}

func (gifExporter) ID() string        { return "gif" }
func (gifExporter) Title() string     { return "Animated GIF" }
func (gifExporter) Extension() string { return ".gif" }

func (gifExporter) Export(w io.Writer, doc editor.Document, opts registry.Options) error {
	n := scaleFactor(opts)

	frames := make([]*image.NRGBA, len(doc.Frames))
	for i := range doc.Frames {
		img, err := frameImage(doc, i)
		if err != nil {
			return err
		}
		frames[i] = upscale(img, n)
	}

	pal := buildPalette(frames)
	fps := doc.FPS
	if fps < editor.MinFPS {
		fps = editor.MinFPS
	}
	delay := 100 / fps

	anim := &gif.GIF{LoopCount: 0}
	for _, img := range frames {
		anim.Image = append(anim.Image, toPaletted(img, pal))
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("export: cannot encode gif: %w", err)
	}
	return nil
}

// buildPalette collects the exact colors used across all frames. When they
// do not fit in 255 entries it falls back to the Plan 9 palette and pixels
// are matched to the nearest entry.
func buildPalette(frames []*image.NRGBA) color.Palette {
	pal := color.Palette{color.NRGBA{}}
	seen := make(map[color.NRGBA]bool)

	for _, img := range frames {
		for i := 0; i < len(img.Pix); i += 4 {
			if img.Pix[i+3] < alphaCutoff {
				continue
			}
			c := color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255}
			if seen[c] {
				continue
			}
			if len(pal) == 256 {
				return append(color.Palette{color.NRGBA{}}, palette.Plan9[:255]...)
			}
			seen[c] = true
			pal = append(pal, c)
		}
	}
	return pal
}

func toPaletted(img *image.NRGBA, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A < alphaCutoff {
				out.SetColorIndex(x, y, 0)
				continue
			}
			c.A = 255
			// Skip index 0 so opaque black never maps to transparent.
			out.SetColorIndex(x, y, uint8(1+pal[1:].Index(c)))
		}
	}
	return out
}
