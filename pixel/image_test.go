package pixel

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestPalette(t *testing.T) {
	p := PaletteOf(Black, Yellow, Aqua)
	if v := p.Len(); v != 3 {
		t.Fatalf("expected 3 colors, got %d", v)
	}

	p.Set(1, Fuchsia)
	if v := p.At(1); v != Fuchsia {
		t.Errorf("expected %#06x at index 1, got %#06x", uint32(Fuchsia), uint32(v))
	}

	p.MakeTransparent(0)
	if !p.IsTransparent(0) {
		t.Error("expected index 0 to be transparent")
	}
	if v := p.Color(0); v != color.Transparent {
		t.Errorf("expected transparent color, got %v", v)
	}
	p.Set(0, White)
	if !p.IsTransparent(0) {
		t.Error("expected Set to keep the transparency flag")
	}
	p.MakeOpaque(0)
	if v := p.Color(0); v != White {
		t.Errorf("expected white, got %v", v)
	}
	if v := p.Color(9); v != color.Transparent {
		t.Errorf("expected out of range index to be transparent, got %v", v)
	}

	colors := p.Colors()
	colors[2] = Black
	if p.At(2) != Aqua {
		t.Error("expected Colors to return a copy")
	}
}

func TestConvertPalette(t *testing.T) {
	p := ConvertPalette(color.Palette{
		color.RGBA{},
		color.RGBA{R: 0xff, A: 0xff},
	})
	if !p.IsTransparent(0) {
		t.Error("expected zero alpha entry to be transparent")
	}
	if p.IsTransparent(1) || p.At(1) != Red {
		t.Errorf("expected opaque red at index 1, got %#06x", uint32(p.At(1)))
	}
}

func TestBitmap(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(64, 32),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			shader := PaletteOf(Black, Red, Yellow, Aqua)
			b := NewBitmap(test.X, test.Y, shader)

			if v := b.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						i := rand.Intn(shader.Len())
						b.Set(x, y, shader.At(i))
						if v := b.At(x, y); v != shader.At(i) {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, v, shader.At(i))
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for _, pt := range []image.Point{{-1, 0}, {0, -1}, {test.X, 0}, {0, test.Y}} {
					b.Set(pt.X, pt.Y, Red)
					if v := b.At(pt.X, pt.Y); v != color.Transparent {
						itt.Fatalf("pixel %s is %#+v, expected transparent", pt, v)
					}
				}
			})

			it.Run("shader", func(itt *testing.T) {
				b.Fill(Yellow)
				shader.Set(2, White)
				if test.X > 0 && test.Y > 0 {
					if v := b.At(0, 0); v != White {
						itt.Fatalf("expected shader change to recolor pixel, got %#+v", v)
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				b.Clear()
				if test.X > 0 && test.Y > 0 {
					if v := b.Index(test.X-1, test.Y-1); v != 0 {
						itt.Fatalf("expected index 0, got %d", v)
					}
				}
			})
		})
	}
}

func TestBitmapFromPaletted(t *testing.T) {
	src := image.NewPaletted(image.Rect(2, 2, 6, 4), color.Palette{color.Black, color.White})
	src.SetColorIndex(3, 3, 1)

	b := BitmapFromPaletted(src)
	if v := b.Bounds().Size(); !v.Eq(image.Pt(4, 2)) {
		t.Fatalf("expected size 4x2, got %s", v)
	}
	if v := b.Index(1, 1); v != 1 {
		t.Errorf("expected index 1 at (1,1), got %d", v)
	}
	if v := b.At(1, 1); v != White {
		t.Errorf("expected white at (1,1), got %#+v", v)
	}
}

func TestTileGrid(t *testing.T) {
	shader := PaletteOf(Black, Red, Yellow)
	shader.MakeTransparent(0)
	sheet := NewBitmap(32, 16, shader)
	// Tile 1 is the right half of the sheet.
	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			sheet.SetIndex(x, y, 2)
		}
	}

	g := NewTileGrid(sheet, 16, 16)
	g.Origin = image.Pt(8, 4)
	if v := g.Tiles(); v != 2 {
		t.Fatalf("expected 2 tiles, got %d", v)
	}
	if v := g.At(8, 4); v != color.Transparent {
		t.Errorf("expected transparent pixel in tile 0, got %#+v", v)
	}
	if err := g.SetTile(1); err != nil {
		t.Fatal(err)
	}
	if v := g.At(8, 4); v != Yellow {
		t.Errorf("expected yellow pixel in tile 1, got %#+v", v)
	}
	if v := g.At(0, 0); v != color.Transparent {
		t.Errorf("expected transparent outside the grid, got %#+v", v)
	}
	if err := g.SetTile(2); !errors.Is(err, ErrTileIndex) {
		t.Errorf("expected ErrTileIndex, got %v", err)
	}
	if v := g.Tile(); v != 1 {
		t.Errorf("expected tile 1 to stay selected, got %d", v)
	}
}
