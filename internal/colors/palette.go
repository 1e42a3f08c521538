package colors

// Palette is an ordered list of "#rrggbb" swatches.
type Palette []string

// DefaultPalette returns the eight starter swatches.
func DefaultPalette() Palette {
	return Palette{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff", "#ff00ff"}
}

// NewPalette builds a palette from user input, dropping invalid entries.
// Falls back to the default palette when nothing valid remains.
func NewPalette(hexes []string) Palette {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		if norm, ok := Parse(h); ok {
			p = append(p, norm)
		}
	}
	if len(p) == 0 {
		return DefaultPalette()
	}
	return p
}

// Clone returns an independent copy.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Add appends a white swatch.
func (p Palette) Add() Palette {
	return append(p, "#ffffff")
}

// Remove deletes the swatch at i.
// The last remaining swatch can't be removed; ok is false in that case.
func (p Palette) Remove(i int) (Palette, bool) {
	if len(p) <= 1 || i < 0 || i >= len(p) {
		return p, false
	}
	out := make(Palette, 0, len(p)-1)
	out = append(out, p[:i]...)
	return append(out, p[i+1:]...), true
}

// Move relocates the swatch at from so it ends up at index to.
func (p Palette) Move(from, to int) Palette {
	if from < 0 || from >= len(p) || to < 0 || to >= len(p) || from == to {
		return p
	}
	out := p.Clone()
	c := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Palette{c}, out[to:]...)...)
	return out
}

// Set replaces the swatch at i with a normalized hex color.
func (p Palette) Set(i int, hex string) (Palette, bool) {
	norm, ok := Parse(hex)
	if !ok || i < 0 || i >= len(p) {
		return p, false
	}
	out := p.Clone()
	out[i] = norm
	return out, true
}
