// Package colors converts between the hex, RGB and HSL color forms used by
// the editor and holds the swatch palette.
package colors

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-sprite/internal/pixel"
)

// Parse normalizes user color input to "#rrggbb".
// Accepts "#rgb", "#rrggbb" and the same forms without the leading '#',
// in any letter case. Returns false for anything else.
func Parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", false
	}
	for _, r := range s[1:] {
		if !isHexDigit(r) {
			return "", false
		}
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// HexToRGB decodes "#rrggbb" (or "#rgb") into its channels.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	norm, ok := Parse(hex)
	if !ok {
		return 0, 0, 0, fmt.Errorf("colors: invalid hex color %q", hex)
	}
	c, err := colorful.Hex(norm)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("colors: invalid hex color %q: %w", hex, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// RGBToHex encodes channels as lower-case "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return fromRGB(r, g, b).Hex()
}

// RGBToHSL returns hue in [0,360), saturation and lightness in [0,1].
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	return fromRGB(r, g, b).Hsl()
}

// HSLToRGB converts back to 8-bit channels, rounding to nearest.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	return colorful.Hsl(h, s, l).Clamped().RGB255()
}

// ToPixel decodes a hex color as an opaque pixel.
func ToPixel(hex string) (pixel.RGBA, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return pixel.Transparent, err
	}
	return pixel.Opaque(r, g, b), nil
}

// FromPixel encodes the RGB part of a pixel as hex, ignoring alpha.
func FromPixel(c pixel.RGBA) string {
	return RGBToHex(c.R, c.G, c.B)
}

func fromRGB(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}
