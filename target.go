package fader

import (
	"fmt"

	"github.com/BeatGlow/fader/pixel"
)

// Target is an ordered, fixed length color container owned by the rendering layer,
// such as a palette, the pixel shader of a shape or the fill colors of a label.
//
// The fader only reads the length and replaces individual entries; it never
// resizes or reorders a target.
type Target interface {
	// Len is the number of colors.
	Len() int

	// At returns the color at index i.
	At(i int) pixel.Color

	// Set the color at index i.
	Set(i int, c pixel.Color)
}

// Group concatenates targets, in order, into a single target. This allows one
// fader to drive the colors of several shapes as a single palette.
type Group []Target

func (g Group) Len() int {
	var n int
	for _, t := range g {
		n += t.Len()
	}
	return n
}

func (g Group) At(i int) pixel.Color {
	t, j := g.locate(i)
	return t.At(j)
}

func (g Group) Set(i int, c pixel.Color) {
	t, j := g.locate(i)
	t.Set(j, c)
}

func (g Group) locate(i int) (Target, int) {
	if i >= 0 {
		j := i
		for _, t := range g {
			n := t.Len()
			if j < n {
				return t, j
			}
			j -= n
		}
	}
	panic(fmt.Sprintf("fader: group index %d out of range [0, %d)", i, g.Len()))
}

// Capture returns the current colors of a target, for use as a fader source.
func Capture(t Target) pixel.ColorSet {
	out := make(pixel.ColorSet, t.Len())
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// WriteBack copies colors into dst, index by index. If the lengths differ,
// ErrLengthMismatch is returned and dst is left untouched.
func WriteBack(dst Target, colors pixel.ColorSet) error {
	if n := dst.Len(); n != len(colors) {
		return fmt.Errorf("%w: target has %d colors, palette has %d", ErrLengthMismatch, n, len(colors))
	}
	for i, c := range colors {
		dst.Set(i, c)
	}
	return nil
}

// Apply writes the faded palette of f into dst.
func Apply(f *Fader, dst Target) error {
	return WriteBack(dst, f.Palette())
}

// Interface checks.
var (
	_ Target = (*pixel.Palette)(nil)
	_ Target = Group(nil)
)
