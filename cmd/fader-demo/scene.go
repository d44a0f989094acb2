package main

import (
	"fmt"
	"image"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/bmp"

	"github.com/BeatGlow/fader"
	"github.com/BeatGlow/fader/content"
	"github.com/BeatGlow/fader/draw"
	"github.com/BeatGlow/fader/pixel"
)

const (
	iconSize     = 16
	defaultIcons = content.DefaultIcons
)

type sceneConfig struct {
	// Background is an 8-bit BMP image, empty for a generated gradient.
	Background string

	// BackgroundBrightness and BackgroundGamma are applied once.
	BackgroundBrightness float64
	BackgroundGamma      float64

	// Icons is an 8-bit BMP sprite sheet with 16x16 tiles, empty for generated icons.
	// Palette index 0 is transparent.
	Icons string

	// Brightness is the initial foreground brightness.
	Brightness float64

	TemperatureColor pixel.Color
	HumidityColor    pixel.Color
}

// scene is the displayed content: a background layer, faded once, and a
// foreground layer whose colors are faded together.
type scene struct {
	background  *pixel.Bitmap
	icon        *pixel.TileGrid
	watchdog    *draw.Rect
	temperature *draw.Label
	humidity    *draw.Label
	sun         *draw.Circle

	// layers in drawing order.
	layers draw.Group

	// colors of the foreground.
	colors     fader.Group
	foreground *fader.Fader
}

func newScene(bounds image.Rectangle, config sceneConfig) (*scene, error) {
	var (
		s      = new(scene)
		center = image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)
		err    error
	)

	if config.Background == "" {
		s.background = gradient(bounds.Dx(), bounds.Dy())
	} else if s.background, err = loadBitmap(config.Background); err != nil {
		return nil, err
	}
	background, err := fader.New(s.background.Shader.Colors(), &fader.Config{
		Brightness: config.BackgroundBrightness,
		Gamma:      config.BackgroundGamma,
		Normalize:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if err = fader.Apply(background, s.background.Shader); err != nil {
		return nil, err
	}

	var sheet *pixel.Bitmap
	if config.Icons == "" {
		sheet = iconSheet(defaultIcons)
	} else if sheet, err = loadBitmap(config.Icons); err != nil {
		return nil, err
	}
	if sheet.Shader.Len() > 0 {
		sheet.Shader.MakeTransparent(0)
	}
	s.icon = pixel.NewTileGrid(sheet, iconSize, iconSize)
	s.icon.Origin = image.Pt(center.X-iconSize/2, bounds.Min.Y+22)
	if s.icon.Tiles() == 0 {
		return nil, fmt.Errorf("icons: sprite sheet smaller than a %dx%d tile", iconSize, iconSize)
	}

	s.watchdog = draw.NewRect(image.Rect(0, 0, 5, 5).Add(bounds.Min), pixel.Fuchsia, pixel.Aqua, 1)

	s.temperature = draw.NewLabel("", config.TemperatureColor, nil)
	s.temperature.Anchor = draw.Center
	s.temperature.Position = image.Pt(center.X, bounds.Min.Y+14)

	s.humidity = draw.NewLabel("", config.HumidityColor, nil)
	s.humidity.Anchor = draw.Center
	s.humidity.Position = image.Pt(center.X, bounds.Min.Y+45)

	s.sun = draw.NewCircle(image.Pt(bounds.Max.X-2, bounds.Min.Y), 8, pixel.PaletteOf(pixel.Yellow))

	s.layers = draw.Group{
		draw.Picture(s.background),
		draw.Picture(s.icon),
		s.watchdog,
		s.temperature,
		s.humidity,
		s.sun,
	}
	s.colors = fader.Group{
		s.icon.Shader(),
		s.watchdog,
		s.temperature,
		s.humidity,
		s.sun,
	}
	if s.foreground, err = fader.New(fader.Capture(s.colors), &fader.Config{Brightness: config.Brightness}); err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	if err = fader.Apply(s.foreground, s.colors); err != nil {
		return nil, err
	}
	return s, nil
}

// panel shows random readings on the scene.
func (s *scene) panel(seed uint64) *content.Panel {
	return &content.Panel{
		Sampler:     content.NewRandom(seed, s.icon.Tiles()),
		Temperature: s.temperature,
		Humidity:    s.humidity,
		Icon:        s.icon,
	}
}

func (s *scene) Draw(dst draw.Image) {
	s.layers.Draw(dst)
}

// loadBitmap loads an 8-bit paletted BMP image.
func loadBitmap(name string) (*pixel.Bitmap, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	p, ok := m.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%s: not a paletted image", name)
	}
	return pixel.BitmapFromPaletted(p), nil
}

// gradient is a vertical night sky gradient.
func gradient(w, h int) *pixel.Bitmap {
	const steps = 32
	shader := pixel.NewPalette(steps)
	for i := 0; i < steps; i++ {
		shader.Set(i, pixel.RGB(uint8(i*2), uint8(i*3), uint8(0x40+i*5)))
	}
	b := pixel.NewBitmap(w, h, shader)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetIndex(x, y, uint8(y*steps/h))
		}
	}
	return b
}

// iconSheet draws a row of n simple icons.
func iconSheet(n int) *pixel.Bitmap {
	shader := pixel.PaletteOf(pixel.Black, pixel.White, pixel.Yellow, pixel.Aqua, pixel.RGB(0x80, 0x80, 0x80))
	sheet := pixel.NewBitmap(n*iconSize, iconSize, shader)
	for i := 0; i < n; i++ {
		var (
			origin = image.Pt(i*iconSize, 0)
			c      = shader.At(1 + i%3)
		)
		draw.Disc(sheet, origin.Add(image.Pt(iconSize/2, iconSize/2-2)), 2+i%5, c)
		if i%2 == 1 {
			cloud := image.Rect(2, 10, 14, 14).Add(origin)
			draw.Box(sheet, cloud, shader.At(4))
		}
	}
	return sheet
}

func parseColor(s string) (pixel.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	return pixel.RGB(c.RGB255()), nil
}
