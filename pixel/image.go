package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Errors
var (
	ErrTileIndex = errors.New("pixel: tile index out of range")
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// Bitmap is an 8-bit per pixel image of palette indices. The colors are
// resolved through a pixel shader (a [Palette]) at draw time, so changing
// the shader recolors the bitmap without touching the pixels.
type Bitmap struct {
	Buffer

	// Shader resolves indices to colors.
	Shader *Palette
}

func NewBitmap(w, h int, shader *Palette) *Bitmap {
	return &Bitmap{
		Buffer: makeBuffer(w, h, w, w*h),
		Shader: shader,
	}
}

// BitmapFromPaletted converts a decoded paletted image into a Bitmap with its
// own shader palette.
func BitmapFromPaletted(src *image.Paletted) *Bitmap {
	var (
		r = src.Bounds()
		b = NewBitmap(r.Dx(), r.Dy(), ConvertPalette(src.Palette))
	)
	for y := 0; y < r.Dy(); y++ {
		copy(b.Pix[y*b.Stride:(y+1)*b.Stride], src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):])
	}
	return b
}

func (p *Bitmap) ColorModel() color.Model {
	return RGB888Model
}

// Index returns the palette index at (x, y).
func (p *Bitmap) Index(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0
	}
	return p.Pix[y*p.Stride+x]
}

// SetIndex sets the palette index at (x, y).
func (p *Bitmap) SetIndex(x, y int, index uint8) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[y*p.Stride+x] = index
}

func (p *Bitmap) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) || p.Shader == nil {
		return color.Transparent
	}
	return p.Shader.Color(int(p.Pix[y*p.Stride+x]))
}

// Set stores the shader index closest to c.
func (p *Bitmap) Set(x, y int, c color.Color) {
	if p.Shader == nil || p.Shader.Len() == 0 {
		return
	}
	p.SetIndex(x, y, uint8(p.nearest(ColorOf(c))))
}

func (p *Bitmap) Fill(c color.Color) {
	if p.Shader == nil || p.Shader.Len() == 0 {
		return
	}
	index := uint8(p.nearest(ColorOf(c)))
	for i := range p.Pix {
		p.Pix[i] = index
	}
}

func (p *Bitmap) nearest(c Color) int {
	var (
		best     int
		bestDist = -1
	)
	for i := 0; i < p.Shader.Len(); i++ {
		d := distance(c, p.Shader.At(i))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func distance(a, b Color) int {
	dr := int(a.R()) - int(b.R())
	dg := int(a.G()) - int(b.G())
	db := int(a.B()) - int(b.B())
	return dr*dr + dg*dg + db*db
}

// TileGrid shows a single tile of a sprite sheet bitmap, using the sheet's
// shader. The sheet is sliced in tiles of TileWidth×TileHeight, numbered
// left to right, top to bottom.
type TileGrid struct {
	Sheet      *Bitmap
	TileWidth  int
	TileHeight int

	// Origin is the top left position of the grid on the display.
	Origin image.Point

	tile int
}

func NewTileGrid(sheet *Bitmap, tileWidth, tileHeight int) *TileGrid {
	return &TileGrid{
		Sheet:      sheet,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
}

func (g *TileGrid) String() string {
	return fmt.Sprintf("tile grid %dx%d, %d tiles", g.TileWidth, g.TileHeight, g.Tiles())
}

// Tiles is the number of tiles in the sprite sheet.
func (g *TileGrid) Tiles() int {
	if g.TileWidth <= 0 || g.TileHeight <= 0 {
		return 0
	}
	size := g.Sheet.Bounds().Size()
	return (size.X / g.TileWidth) * (size.Y / g.TileHeight)
}

// Tile returns the selected tile.
func (g *TileGrid) Tile() int {
	return g.tile
}

// SetTile selects the tile to show.
func (g *TileGrid) SetTile(tile int) error {
	if tile < 0 || tile >= g.Tiles() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrTileIndex, tile, g.Tiles())
	}
	g.tile = tile
	return nil
}

// Shader is the palette of the sprite sheet.
func (g *TileGrid) Shader() *Palette {
	return g.Sheet.Shader
}

func (g *TileGrid) Bounds() image.Rectangle {
	return image.Rectangle{Min: g.Origin, Max: g.Origin.Add(image.Pt(g.TileWidth, g.TileHeight))}
}

func (g *TileGrid) ColorModel() color.Model {
	return RGB888Model
}

// At returns the color of the selected tile at display position (x, y).
func (g *TileGrid) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(g.Bounds()) || g.Tiles() == 0 {
		return color.Transparent
	}
	var (
		columns = g.Sheet.Bounds().Dx() / g.TileWidth
		sx      = (g.tile%columns)*g.TileWidth + x - g.Origin.X
		sy      = (g.tile/columns)*g.TileHeight + y - g.Origin.Y
	)
	return g.Sheet.At(sx, sy)
}

// Interface checks.
var (
	_ Image       = (*Bitmap)(nil)
	_ image.Image = (*TileGrid)(nil)
)
