// Package export encodes sprite documents to image files and decodes
// images back into frames.
//
// Each format registers itself with the registry in init(), so importing
// this package for side effects is enough to make "png", "sheet" and "gif"
// available to registry.Create.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tui-sprite/internal/editor"
	"github.com/vovakirdan/tui-sprite/internal/pixel"
	"github.com/vovakirdan/tui-sprite/internal/registry"
)

// MaxScale bounds the upscale factor so a 64x64 sheet stays a sane size.
const MaxScale = 32

// Write looks up the exporter for format and encodes doc to w.
func Write(w io.Writer, format string, doc editor.Document, opts registry.Options) error {
	e, err := registry.Create(format)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return e.Export(w, doc, opts)
}

// frameImage returns frame i of doc as an image.
func frameImage(doc editor.Document, i int) (*image.NRGBA, error) {
	if i < 0 || i >= len(doc.Frames) {
		return nil, fmt.Errorf("export: frame %d out of range (document has %d)", i, len(doc.Frames))
	}
	buf, err := pixel.FromBytes(doc.Width, doc.Height, doc.Frames[i])
	if err != nil {
		return nil, fmt.Errorf("export: frame %d: %w", i, err)
	}
	return buf.ToImage(), nil
}

// scaleFactor clamps the requested scale to [1, MaxScale].
func scaleFactor(opts registry.Options) int {
	switch {
	case opts.Scale < 1:
		return 1
	case opts.Scale > MaxScale:
		return MaxScale
	}
	return opts.Scale
}

// upscale enlarges img by an integer factor without smoothing.
func upscale(img *image.NRGBA, n int) *image.NRGBA {
	if n <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*n, b.Dy()*n))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
