package content

import (
	"errors"
	"testing"

	"github.com/BeatGlow/fader/pixel"
)

type fixedSampler Reading

func (s fixedSampler) Sample() Reading { return Reading(s) }

type testText struct {
	text string
}

func (t *testText) SetText(text string) { t.text = text }

func TestReadingFormat(t *testing.T) {
	tests := []struct {
		Reading     Reading
		Temperature string
		Humidity    string
	}{
		{Reading{Temperature: 50, Humidity: 20}, "50°", "20%"},
		{Reading{Temperature: 72.4, Humidity: 45.6}, "72°", "46%"},
		{Reading{Temperature: 99.9, Humidity: 89.9}, "100°", "90%"},
	}
	for _, test := range tests {
		t.Run(test.Temperature, func(it *testing.T) {
			if v := test.Reading.FormatTemperature(); v != test.Temperature {
				it.Errorf("expected temperature %q, got %q", test.Temperature, v)
			}
			if v := test.Reading.FormatHumidity(); v != test.Humidity {
				it.Errorf("expected humidity %q, got %q", test.Humidity, v)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	r := NewRandom(42, DefaultIcons)
	for range 1000 {
		v := r.Sample()
		if v.Temperature < 50 || v.Temperature > 99.9 {
			t.Fatalf("expected temperature in [50, 99.9], got %g", v.Temperature)
		}
		if v.Humidity < 20 || v.Humidity > 89.9 {
			t.Fatalf("expected humidity in [20, 89.9], got %g", v.Humidity)
		}
		if v.Icon < 0 || v.Icon >= DefaultIcons {
			t.Fatalf("expected icon in [0, %d), got %d", DefaultIcons, v.Icon)
		}
	}

	a, b := NewRandom(7, DefaultIcons), NewRandom(7, DefaultIcons)
	for range 10 {
		if va, vb := a.Sample(), b.Sample(); va != vb {
			t.Fatalf("expected equal seeds to produce equal readings, got %s and %s", va, vb)
		}
	}

	if v := NewRandom(1, 0).Sample().Icon; v != 0 {
		t.Errorf("expected icon 0 without icons, got %d", v)
	}
}

func TestPanel(t *testing.T) {
	var (
		sheet       = pixel.NewBitmap(32, 16, pixel.PaletteOf(pixel.Black, pixel.White))
		icon        = pixel.NewTileGrid(sheet, 16, 16)
		temperature = new(testText)
		humidity    = new(testText)
		panel       = &Panel{
			Sampler:     fixedSampler{Temperature: 64.4, Humidity: 31.2, Icon: 1},
			Temperature: temperature,
			Humidity:    humidity,
			Icon:        icon,
		}
	)
	if err := panel.Refresh(); err != nil {
		t.Fatal(err)
	}
	if temperature.text != "64°" {
		t.Errorf("expected temperature %q, got %q", "64°", temperature.text)
	}
	if humidity.text != "31%" {
		t.Errorf("expected humidity %q, got %q", "31%", humidity.text)
	}
	if v := icon.Tile(); v != 1 {
		t.Errorf("expected tile 1, got %d", v)
	}
	if v := panel.Last(); v.Icon != 1 || v.Temperature != 64.4 {
		t.Errorf("expected last reading to be kept, got %s", v)
	}

	t.Run("bad icon", func(it *testing.T) {
		panel.Sampler = fixedSampler{Temperature: 80, Humidity: 50, Icon: 5}
		if err := panel.Refresh(); !errors.Is(err, pixel.ErrTileIndex) {
			it.Fatalf("expected ErrTileIndex, got %v", err)
		}
		if temperature.text != "64°" {
			it.Errorf("expected text unchanged after failed refresh, got %q", temperature.text)
		}
		if v := panel.Last(); v.Icon != 1 {
			it.Errorf("expected last reading unchanged, got %s", v)
		}
	})

	t.Run("no elements", func(it *testing.T) {
		p := &Panel{Sampler: NewRandom(1, DefaultIcons)}
		if err := p.Refresh(); err != nil {
			it.Fatal(err)
		}
	})
}
