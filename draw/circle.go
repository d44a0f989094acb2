package draw

import (
	"fmt"
	"image"

	"github.com/BeatGlow/fader/pixel"
)

// Circle is a filled circle colored by the first entry of its shader.
type Circle struct {
	Center image.Point
	Radius int
	shader *pixel.Palette
}

// NewCircle returns a filled circle. If shader is nil, a single entry white
// shader is used.
func NewCircle(center image.Point, radius int, shader *pixel.Palette) *Circle {
	if shader == nil {
		shader = pixel.PaletteOf(pixel.White)
	}
	return &Circle{
		Center: center,
		Radius: radius,
		shader: shader,
	}
}

func (c *Circle) String() string {
	return fmt.Sprintf("circle at %s radius %d", c.Center, c.Radius)
}

// Shader returns the palette the circle is colored with.
func (c *Circle) Shader() *pixel.Palette { return c.shader }

func (c *Circle) Len() int { return c.shader.Len() }

func (c *Circle) At(i int) pixel.Color { return c.shader.At(i) }

func (c *Circle) Set(i int, v pixel.Color) { c.shader.Set(i, v) }

// Bounds of the circle.
func (c *Circle) Bounds() image.Rectangle {
	return image.Rect(
		c.Center.X-c.Radius, c.Center.Y-c.Radius,
		c.Center.X+c.Radius+1, c.Center.Y+c.Radius+1,
	)
}

func (c *Circle) Draw(dst Image) {
	if c.shader.Len() == 0 || c.shader.IsTransparent(0) {
		return
	}
	Disc(dst, c.Center, c.Radius, c.shader.At(0))
}
