package pixel

import (
	"fmt"
	"image/color"
)

// Palette is a fixed length, indexed list of colors. Each entry may be
// flagged transparent, in which case images using the palette as their
// shader do not draw pixels with that index.
//
// A Palette is never resized after creation; only the entries change.
type Palette struct {
	colors      []Color
	transparent []bool
}

// NewPalette returns a black palette with n entries.
func NewPalette(n int) *Palette {
	return &Palette{
		colors:      make([]Color, n),
		transparent: make([]bool, n),
	}
}

// PaletteOf returns a palette holding the provided colors.
func PaletteOf(colors ...Color) *Palette {
	p := NewPalette(len(colors))
	copy(p.colors, colors)
	return p
}

// ConvertPalette converts a standard library palette, as returned by image
// decoders. Entries with zero alpha are flagged transparent.
func ConvertPalette(src color.Palette) *Palette {
	p := NewPalette(len(src))
	for i, c := range src {
		p.colors[i] = ColorOf(c)
		if _, _, _, a := c.RGBA(); a == 0 {
			p.transparent[i] = true
		}
	}
	return p
}

func (p *Palette) String() string {
	return fmt.Sprintf("palette with %d colors", len(p.colors))
}

// Len is the number of entries.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns the color at index i.
func (p *Palette) At(i int) Color {
	return p.colors[i]
}

// Set the color at index i. The transparency flag is left untouched.
func (p *Palette) Set(i int, c Color) {
	p.colors[i] = c
}

// Colors returns a copy of all entries.
func (p *Palette) Colors() ColorSet {
	return ColorSet(p.colors).Clone()
}

// MakeTransparent flags index i as transparent.
func (p *Palette) MakeTransparent(i int) {
	p.transparent[i] = true
}

// MakeOpaque clears the transparency flag of index i.
func (p *Palette) MakeOpaque(i int) {
	p.transparent[i] = false
}

// IsTransparent reports if index i is transparent.
func (p *Palette) IsTransparent(i int) bool {
	return p.transparent[i]
}

// Color returns the entry at index i as a [color.Color], honoring transparency.
func (p *Palette) Color(i int) color.Color {
	if i < 0 || i >= len(p.colors) || p.transparent[i] {
		return color.Transparent
	}
	return p.colors[i]
}
