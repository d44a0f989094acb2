// Package draw renders shapes, text and palette images onto a display image.
//
// The shapes in this package keep their colors in a [pixel.Palette], so their
// colors can be faded in place without knowing which kind of shape they are.
package draw

import (
	"image"
	"image/draw"
)

// Drawer is an alias for [image/draw.Drawer].
type Drawer = draw.Drawer

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for image/draw.Op
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = iota

	// Src specifies ``src in mask''.
	Src
)

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Drawable is anything that can render itself onto an image.
type Drawable interface {
	Draw(dst Image)
}

// Group draws its members in order, later members on top.
type Group []Drawable

func (g Group) Draw(dst Image) {
	for _, d := range g {
		d.Draw(dst)
	}
}

type picture struct {
	image.Image
}

// Picture returns a drawable for an image, such as a [pixel.Bitmap] or [pixel.TileGrid].
// Transparent pixels leave the destination untouched.
func Picture(src image.Image) Drawable {
	return picture{src}
}

func (p picture) Draw(dst Image) {
	r := p.Bounds()
	Draw(dst, r, p.Image, r.Min, Over)
}
