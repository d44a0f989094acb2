package draw

import (
	"fmt"
	"image"

	"github.com/BeatGlow/fader/pixel"
)

// Rect palette indices.
const (
	RectFill = iota
	RectOutline
)

// Rect is a rectangle with a fill color and an outline of Stroke pixels.
// Both colors live in a two entry palette; a transparent entry is not drawn.
type Rect struct {
	Bounds  image.Rectangle
	Stroke  int
	palette *pixel.Palette
}

// NewRect returns a filled rectangle with an outline.
func NewRect(r image.Rectangle, fill, outline pixel.Color, stroke int) *Rect {
	return &Rect{
		Bounds:  r.Canon(),
		Stroke:  stroke,
		palette: pixel.PaletteOf(fill, outline),
	}
}

func (r *Rect) String() string {
	return fmt.Sprintf("rect %s stroke %d", r.Bounds, r.Stroke)
}

// Palette returns the palette holding the fill and outline colors.
func (r *Rect) Palette() *pixel.Palette { return r.palette }

func (r *Rect) Len() int { return r.palette.Len() }
func (r *Rect) At(i int) pixel.Color { return r.palette.At(i) }
func (r *Rect) Set(i int, c pixel.Color) { r.palette.Set(i, c) }

func (r *Rect) Draw(dst Image) {
	if !r.palette.IsTransparent(RectFill) {
		Box(dst, r.Bounds, r.palette.At(RectFill))
	}
	if r.palette.IsTransparent(RectOutline) {
		return
	}
	c := r.palette.At(RectOutline)
	for i, inner := 0, r.Bounds; i < r.Stroke && !inner.Empty(); i++ {
		Rectangle(dst, inner, c)
		inner = inner.Inset(1)
	}
}
