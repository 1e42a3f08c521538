package export

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// whiteCutoff: pixels with every channel above this become transparent.
const whiteCutoff = 250

// Decode reads a PNG, GIF or JPEG image and fits it to a w x h frame.
// The image is stretched with nearest-neighbor sampling and near-white
// pixels are knocked out so scanned or flattened art gets a transparent
// background.
func Decode(r io.Reader, w, h int) (*pixel.Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("export: invalid target size %dx%d", w, h)
	}
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("export: cannot decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("export: %s image is empty", format)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	buf := pixel.FromImage(dst)
	knockOutWhite(buf)
	return buf, nil
}

func knockOutWhite(b *pixel.Buffer) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := b.At(x, y)
			if c.R > whiteCutoff && c.G > whiteCutoff && c.B > whiteCutoff {
				b.SetAlpha(x, y, 0)
			}
		}
	}
}
