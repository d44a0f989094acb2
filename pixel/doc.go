// Package pixel implements the colors, palettes and indexed images used by the fader.
//
// Colors are 24-bit RGB values compatible with Go's native [color.Color]. Palettes are
// fixed length color containers that act as pixel shaders for [Bitmap] and [TileGrid]
// images, so recoloring a palette recolors every image drawn through it.
package pixel
