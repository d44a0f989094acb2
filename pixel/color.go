package pixel

import (
	"fmt"
	"image/color"
)

// RGB888Model converts any color to a 24-bit Color, dropping alpha.
var RGB888Model color.Model = color.ModelFunc(rgb888Model)

// Common colors.
const (
	Black   Color = 0x000000
	White   Color = 0xFFFFFF
	Red     Color = 0xFF0000
	Yellow  Color = 0xFFFF00
	Aqua    Color = 0x00FFFF
	Fuchsia Color = 0xFF00FF
)

// Color represents a 24-bit 8-8-8 RGB color, stored as 0xRRGGBB.
type Color uint32

// RGB returns the Color for the given channels.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// R is the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G is the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B is the blue channel.
func (c Color) B() uint8 { return uint8(c) }

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// Channels returns the red, green and blue channels.
func (c Color) Channels() (r, g, b uint8) {
	return c.R(), c.G(), c.B()
}

// RGBA implements [color.Color]; colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	r |= r << 8
	g = uint32(c.G())
	g |= g << 8
	b = uint32(c.B())
	b |= b << 8
	return r, g, b, 0xffff
}

func rgb888Model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// ColorOf converts any color to a Color.
func ColorOf(c color.Color) Color {
	return rgb888Model(c).(Color)
}

// ColorSet is an ordered sequence of colors. The index of a color is the key
// used to find it back in a target container.
type ColorSet []Color

// Clone returns a copy of the set.
func (s ColorSet) Clone() ColorSet {
	if s == nil {
		return nil
	}
	out := make(ColorSet, len(s))
	copy(out, s)
	return out
}

// MaxChannel returns the largest channel value across all colors in the set.
func (s ColorSet) MaxChannel() uint8 {
	var peak uint8
	for _, c := range s {
		r, g, b := c.Channels()
		peak = max(peak, r, g, b)
	}
	return peak
}

// Equal reports whether both sets hold the same colors in the same order.
func (s ColorSet) Equal(other ColorSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
