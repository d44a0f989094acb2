package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/BeatGlow/fader/pixel"
)

func TestNewScene(t *testing.T) {
	s, err := newScene(image.Rect(0, 0, 32, 64), sceneConfig{
		BackgroundBrightness: 0.2,
		BackgroundGamma:      0.65,
		Brightness:           0.5,
		TemperatureColor:     pixel.Yellow,
		HumidityColor:        pixel.Aqua,
	})
	if err != nil {
		t.Fatal(err)
	}

	// icon shader, rect, two labels and the sun
	if n, want := s.colors.Len(), 5+2+2+2+1; n != want {
		t.Fatalf("expected %d foreground colors, got %d", want, n)
	}
	if v := s.colors.At(5); v != pixel.RGB(0x80, 0, 0x80) {
		t.Errorf("expected watchdog fill at half brightness, got %s", v)
	}
	if v := s.sun.At(0); v != pixel.RGB(0x80, 0x80, 0) {
		t.Errorf("expected sun at half brightness, got %s", v)
	}
	if !s.icon.Shader().IsTransparent(0) {
		t.Error("expected icon index 0 to be transparent")
	}
	if !s.temperature.Palette().IsTransparent(0) {
		t.Error("expected label background to stay transparent")
	}

	// normalized to the peak, then dimmed to 0.2
	if v := s.background.Shader.Colors().MaxChannel(); v != 51 {
		t.Errorf("expected background peak 51, got %d", v)
	}

	panel := s.panel(1)
	if err = panel.Refresh(); err != nil {
		t.Fatal(err)
	}
	if s.temperature.Text() == "" || s.humidity.Text() == "" {
		t.Error("expected labels to be filled in")
	}

	m := image.NewRGBA(image.Rect(0, 0, 32, 64))
	s.Draw(m)
	if v := m.At(2, 2); v != color.RGBAModel.Convert(pixel.RGB(0x80, 0, 0x80)) {
		t.Errorf("expected watchdog fill at (2,2), got %v", v)
	}
}

func TestLoadBitmap(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 4, 2), color.Palette{
		color.RGBA{A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	})
	src.SetColorIndex(3, 1, 1)

	name := filepath.Join(t.TempDir(), "test.bmp")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if err = bmp.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err = f.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := loadBitmap(name)
	if err != nil {
		t.Fatal(err)
	}
	if v := b.Bounds(); v != src.Bounds() {
		t.Errorf("expected bounds %s, got %s", src.Bounds(), v)
	}
	if v := b.Index(3, 1); v != 1 {
		t.Errorf("expected index 1, got %d", v)
	}
	if v := b.Shader.At(1); v != pixel.Red {
		t.Errorf("expected red palette entry, got %s", v)
	}

	if _, err = loadBitmap(filepath.Join(t.TempDir(), "missing.bmp")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		Test string
		Want pixel.Color
	}{
		{"#ffff00", pixel.Yellow},
		{"#00ffff", pixel.Aqua},
		{"#123456", pixel.RGB(0x12, 0x34, 0x56)},
	}
	for _, test := range tests {
		t.Run(test.Test, func(it *testing.T) {
			v, err := parseColor(test.Test)
			if err != nil {
				it.Fatal(err)
			}
			if v != test.Want {
				it.Errorf("expected %s, got %s", test.Want, v)
			}
		})
	}
	if _, err := parseColor("yellow"); err == nil {
		t.Error("expected error for invalid color")
	}
}
